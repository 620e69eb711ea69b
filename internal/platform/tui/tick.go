// Package tui hosts arcade games in the terminal: the Bubble Tea game loop,
// the menus, the leaderboard screen and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

// TickMsg advances the running game by one fixed step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg one tick from now.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickDuration(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
