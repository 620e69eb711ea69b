// Package registry maps leaderboard mode tags to the games that produce
// them. Match-3 Rush registers a single "match3" mode; Color Match
// registers one mode per difficulty ("colormatch_easy" and so on), so each
// difficulty gets its own leaderboard, menu entry and `arcade play` target.
// Game packages register from init, and the shells (local TUI, SSH, CLI and
// the HTTP API) only ever look modes up here.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

// Game is what a shell drives: a fixed-tick simulation with a text screen
// and a final leaderboard result. Implementations hold no terminal or
// network state; input arrives as abstract actions and time as ticks.
type Game interface {
	// ID is the mode tag, e.g. "match3" or "colormatch_hard". Scores are
	// filed under it.
	ID() string

	// Title is the menu name, e.g. "Color Match (Hard)".
	Title() string

	// Reset starts a fresh run with the given screen size, tick rate and
	// seed. Shells call it on launch and on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, game over and pause for the shell's chrome.
	State() core.GameState

	// Result is the leaderboard value of a finished run: the final score
	// for Match-3 Rush, the elapsed time for Color Match. The shell records
	// it once State reports game over; ok stays false until then.
	Result() (result core.RunResult, ok bool)
}

// GameInfo names a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory returns a new, not yet Reset, game for one mode.
type Factory func() Game

type mode struct {
	factory Factory
	title   string
}

var (
	mu    sync.RWMutex
	modes = make(map[string]mode)
)

// Register makes a mode available. The title is taken from a throwaway
// instance so menus can list modes without starting them. Registering the
// same mode tag twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	modes[id] = mode{factory: f, title: f().Title()}
}

// List returns every registered mode, ordered by tag.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(modes))
	for id, m := range modes {
		out = append(out, GameInfo{ID: id, Title: m.title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create returns a new game for the mode tag.
func Create(id string) (Game, error) {
	mu.RLock()
	m, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return m.factory(), nil
}

// Title returns a mode's menu name.
func Title(id string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	return m.title, ok
}

// Exists reports whether the mode tag is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
