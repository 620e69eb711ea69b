package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/games/colormatch"
	"github.com/vovakirdan/tile-arcade/internal/platform/tui"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

var flagLevel string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Space/X           - Tap the tile under the cursor
  Enter/C           - Confirm the selection (Color Match)
  P                 - Pause
  R                 - Restart (after the run ends)
  Esc/B             - Back (when paused or finished)
  Q/Ctrl+C          - Quit

Color Match levels:
  easy    - 3x3 board, 3 colors
  medium  - 5x5 board, 5 colors
  hard    - 7x7 board, 7 colors

Examples:
  arcade play match3
  arcade play colormatch
  arcade play colormatch --level hard
  arcade play colormatch_medium
  arcade play match3 --config ./my-match3.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Color Match level: easy, medium, hard")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID, err := resolveGameID(args[0], flagLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	applyConfigPath()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	s := openSession()
	player := s.player()

	_, runErr := tui.Run(game, s.board, player, s.cfg)

	// Close store before potential exit
	s.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// resolveGameID maps "colormatch" plus a level onto its registry ID.
// Any other name is returned as is.
func resolveGameID(name, level string) (string, error) {
	if name != tui.ColorMatchID {
		if level != "" {
			return "", fmt.Errorf("--level only applies to %s", tui.ColorMatchID)
		}
		return name, nil
	}
	d, err := config.ParseDifficulty(level)
	if err != nil {
		return "", err
	}
	return colormatch.ModeTag(d), nil
}
