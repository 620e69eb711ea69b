package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/platform/tui"
	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/scores"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show the leaderboard for a mode",
	Long: `Display the best runs for the specified mode.

Match-3 Rush ranks by score, Color Match ranks by fastest time.

Examples:
  arcade scores match3
  arcade scores colormatch_easy
  arcade scores colormatch_hard --limit 3
  arcade scores match3 --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", scores.DefaultLimit, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode := args[0]

	title, ok := registry.Title(mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	board := scores.New(store)
	if flagClear {
		if err := board.Clear(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing leaderboard: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared leaderboard - %s\n", title)
		return
	}
	entries := board.TopN(mode, flagLimit)

	fmt.Printf("Leaderboard - %s\n", title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first record!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "Rank", "Player", "Result", "Date")
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "----", "------", "------", "----")

	for i, e := range entries {
		dateStr := e.Timestamp.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-10s  %s\n", i+1, e.Player, tui.FormatValue(e), dateStr)
	}

	fmt.Println()
	fmt.Printf("Best: %s by %s\n", tui.FormatValue(entries[0]), entries[0].Player)
	if at, ok := board.LastPlayed(mode); ok {
		fmt.Printf("Last played: %s\n", at.Local().Format("2006-01-02 15:04"))
	}
}
