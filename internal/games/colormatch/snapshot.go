package colormatch

import (
	"time"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
)

// Snapshot is an immutable copy of the board for rendering and tests.
type Snapshot struct {
	Difficulty config.Difficulty
	GridSize   int
	Palette    []Swatch
	Tiles      []Tile
	Selection  []int // in pick order; Selection[0] names the target color
	Message    string
	Outcome    Outcome
	Status     Status
	Elapsed    time.Duration
	Matched    int
}

// Selected reports whether index is in the current selection.
func (s Snapshot) Selected(index int) bool {
	for _, sel := range s.Selection {
		if sel == index {
			return true
		}
	}
	return false
}

// Snapshot returns the current board state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() Snapshot {
	tiles := make([]Tile, len(e.tiles))
	copy(tiles, e.tiles)
	sel := make([]int, len(e.selection))
	copy(sel, e.selection)
	palette := make([]Swatch, len(e.palette))
	copy(palette, e.palette)

	return Snapshot{
		Difficulty: e.level.Difficulty,
		GridSize:   e.level.GridSize,
		Palette:    palette,
		Tiles:      tiles,
		Selection:  sel,
		Message:    e.message,
		Outcome:    e.outcome,
		Status:     e.status,
		Elapsed:    e.elapsed,
		Matched:    e.matchedCount(),
	}
}

// Event is emitted to subscribers after engine operations.
type Event interface {
	colorMatchEvent()
}

// StateChanged carries the board state after a Tap, ConfirmMatch or Reset.
type StateChanged struct {
	Snapshot Snapshot
}

func (StateChanged) colorMatchEvent() {}

// RunCompleted is emitted once when the last color group is matched.
type RunCompleted struct {
	Difficulty config.Difficulty
	Elapsed    time.Duration
	Result     core.RunResult
}

func (RunCompleted) colorMatchEvent() {}
