package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/platform/tui"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game mode registered in the arcade.

Each Color Match level is its own mode with its own leaderboard.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := len("Mode")
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "Mode", "Title", "Ranked by")
	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "----", "-----", "---------")

	for _, g := range games {
		fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, g.ID, g.Title, rankedBy(g.ID))
	}

	levels := make([]string, 0, len(config.Difficulties()))
	for _, d := range config.Difficulties() {
		levels = append(levels, string(d))
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <mode>' to play a game, or")
	fmt.Printf("    'arcade play %s --level %s'.\n", tui.ColorMatchID, strings.Join(levels, "|"))
}

// rankedBy describes how a mode's leaderboard is ordered.
func rankedBy(id string) string {
	if strings.HasPrefix(id, tui.ColorMatchID+"_") {
		return "fastest time"
	}
	return "highest score"
}
