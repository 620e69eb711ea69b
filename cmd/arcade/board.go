package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/games/colormatch"
	"github.com/vovakirdan/tile-arcade/internal/games/match3"
	"github.com/vovakirdan/tile-arcade/internal/platform/tui"
	"github.com/vovakirdan/tile-arcade/internal/scores"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

const guestName = "guest"

// session is what every interactive command needs: the database (may be
// nil), the leaderboard on top of it and the runtime config.
type session struct {
	store *storage.Store
	board *scores.Store
	cfg   core.RuntimeConfig
}

// openSession opens the scores database. Without it the leaderboard is kept
// in memory and lost on exit.
func openSession() *session {
	s := &session{cfg: runtimeConfig()}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "scores"})
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		s.board = scores.New(scores.NewMemoryKV(), scores.WithLogger(logger))
		return s
	}
	s.store = store
	s.board = scores.New(store, scores.WithLogger(logger))
	return s
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// player returns the stored username, asking for one on first run.
func (s *session) player() string {
	if s.store == nil {
		return guestName
	}
	name, err := tui.EnsureUsername(s.store, s.cfg.ScreenW, s.cfg.ScreenH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if name = strings.TrimSpace(name); name == "" {
		return guestName
	}
	return name
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// applyConfigPath points every game at the --config file.
func applyConfigPath() {
	colormatch.SetConfigPath(flagConfig)
	match3.SetConfigPath(flagConfig)
}
