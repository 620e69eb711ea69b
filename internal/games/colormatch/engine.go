package colormatch

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
)

// ErrEmptySelection is returned by ConfirmMatch when nothing is selected.
var ErrEmptySelection = errors.New("colormatch: empty selection")

// Tile is one square of the board. Color never changes after the board is
// dealt; Matched is sticky for the rest of the run.
type Tile struct {
	Index   int
	Color   ColorID
	Matched bool
}

// Status is the run-level state.
type Status int

const (
	StatusSelecting Status = iota
	StatusAllMatched
)

// Outcome describes the result of the latest confirmation.
type Outcome int

const (
	OutcomeNone       Outcome = iota
	OutcomeSuccess            // whole group matched
	OutcomeWrongColor         // selection mixed colors
	OutcomeIncomplete         // right color, missing tiles
	OutcomeEmpty              // nothing selected
)

// Engine runs one Color Match board. All methods are safe for concurrent
// use; listeners are called after the engine lock is released.
type Engine struct {
	mu sync.Mutex

	level   config.ColorMatchLevel
	palette []Swatch
	rng     core.Rand

	tiles     []Tile
	selection []int
	message   string
	outcome   Outcome
	status    Status
	elapsed   time.Duration

	pending []Event
	events  core.Notifier[Event]
}

// NewEngine creates an engine for the given level and deals the first board.
func NewEngine(level config.ColorMatchLevel, rng core.Rand) (*Engine, error) {
	palette, err := buildPalette(level.Colors)
	if err != nil {
		return nil, err
	}
	if level.GridSize <= 0 || level.TotalTiles()%len(palette) != 0 {
		return nil, fmt.Errorf("colormatch: %d tiles cannot be split across %d colors",
			level.TotalTiles(), len(palette))
	}

	e := &Engine{
		level:   level,
		palette: palette,
		rng:     rng,
	}
	e.deal()
	return e, nil
}

// Mode returns the leaderboard tag for this board.
func (e *Engine) Mode() string {
	return ModeTag(e.level.Difficulty)
}

// ModeTag returns the leaderboard tag for a difficulty.
func ModeTag(d config.Difficulty) string {
	return "colormatch_" + string(d)
}

// Subscribe registers a listener for engine events.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	return e.events.Subscribe(fn)
}

// Tap toggles the tile at index in the selection.
func (e *Engine) Tap(index int) {
	e.mu.Lock()
	e.tap(index)
	evs := e.flush()
	e.mu.Unlock()

	e.events.Emit(evs...)
}

func (e *Engine) tap(index int) {
	if e.status == StatusAllMatched {
		return
	}
	if index < 0 || index >= len(e.tiles) {
		e.message = "No tile there"
		return
	}
	if e.tiles[index].Matched {
		e.message = "That tile is already matched"
		return
	}

	for i, sel := range e.selection {
		if sel == index {
			e.selection = append(e.selection[:i], e.selection[i+1:]...)
			e.message = "Tile deselected"
			return
		}
	}

	e.selection = append(e.selection, index)
	if len(e.selection) == 1 {
		e.message = fmt.Sprintf("Find all %s tiles!", e.colorName(e.tiles[index].Color))
	} else {
		e.message = fmt.Sprintf("%d tiles selected", len(e.selection))
	}
}

// ConfirmMatch checks the selection against the target color, which is the
// color of the first selected tile. The attempt succeeds only if the
// selection holds every unmatched tile of that color; any other outcome
// clears the selection and leaves all matched flags untouched.
func (e *Engine) ConfirmMatch() error {
	e.mu.Lock()
	err := e.confirm()
	evs := e.flush()
	e.mu.Unlock()

	e.events.Emit(evs...)
	return err
}

func (e *Engine) confirm() error {
	if e.status == StatusAllMatched {
		return nil
	}
	if len(e.selection) == 0 {
		e.outcome = OutcomeEmpty
		e.message = "Select some tiles first!"
		return ErrEmptySelection
	}

	target := e.tiles[e.selection[0]].Color
	for _, idx := range e.selection {
		if e.tiles[idx].Color != target {
			e.outcome = OutcomeWrongColor
			e.message = "Not all the same color! Try again."
			e.selection = e.selection[:0]
			return nil
		}
	}

	total := e.remaining(target)
	if len(e.selection) < total {
		e.outcome = OutcomeIncomplete
		e.message = fmt.Sprintf("Found %d of %d %s tiles. Try again!",
			len(e.selection), total, e.colorName(target))
		e.selection = e.selection[:0]
		return nil
	}

	for _, idx := range e.selection {
		e.tiles[idx].Matched = true
	}
	e.outcome = OutcomeSuccess
	e.message = fmt.Sprintf("Matched all %d %s tiles!", len(e.selection), e.colorName(target))
	e.selection = e.selection[:0]

	if e.matchedCount() == len(e.tiles) {
		e.status = StatusAllMatched
		e.message = fmt.Sprintf("All colors matched in %s!", formatElapsed(e.elapsed))
		e.pending = append(e.pending, RunCompleted{
			Difficulty: e.level.Difficulty,
			Elapsed:    e.elapsed,
			Result:     e.result(),
		})
	}
	return nil
}

// Reset deals a fresh board and clears all run state.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.deal()
	evs := e.flush()
	e.mu.Unlock()

	e.events.Emit(evs...)
}

// Tick advances the run clock while the board is unsolved.
func (e *Engine) Tick(dt time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusSelecting && dt > 0 {
		e.elapsed += dt
	}
}

// Result returns the leaderboard entry for a finished run.
func (e *Engine) Result() (core.RunResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusAllMatched {
		return core.RunResult{}, false
	}
	return e.result(), true
}

func (e *Engine) result() core.RunResult {
	return core.RunResult{
		Mode:   e.Mode(),
		Metric: core.MetricTime,
		Value:  e.elapsed.Milliseconds(),
	}
}

// deal lays out tilesPerColor tiles of every color and shuffles them.
func (e *Engine) deal() {
	perColor := e.level.TilesPerColor()
	tiles := make([]Tile, 0, e.level.TotalTiles())
	for c := range e.palette {
		for range perColor {
			tiles = append(tiles, Tile{Color: ColorID(c)})
		}
	}

	e.rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	for i := range tiles {
		tiles[i].Index = i
	}

	e.tiles = tiles
	e.selection = e.selection[:0]
	e.status = StatusSelecting
	e.outcome = OutcomeNone
	e.elapsed = 0
	e.message = "Tap tiles of one color, then confirm"
}

// remaining counts unmatched tiles of color c.
func (e *Engine) remaining(c ColorID) int {
	n := 0
	for _, t := range e.tiles {
		if t.Color == c && !t.Matched {
			n++
		}
	}
	return n
}

func (e *Engine) matchedCount() int {
	n := 0
	for _, t := range e.tiles {
		if t.Matched {
			n++
		}
	}
	return n
}

func (e *Engine) colorName(c ColorID) string {
	if int(c) < 0 || int(c) >= len(e.palette) {
		return "?"
	}
	return e.palette[c].Name
}

// flush queues a state change after any pending events and hands them over.
func (e *Engine) flush() []Event {
	evs := append([]Event{StateChanged{Snapshot: e.snapshot()}}, e.pending...)
	e.pending = nil
	return evs
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
