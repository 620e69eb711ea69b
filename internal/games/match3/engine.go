package match3

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
)

// ModeTag is the leaderboard tag for Match-3 Rush.
const ModeTag = "match3"

// alertDuration is how long a time warning stays on screen.
const alertDuration = 2 * time.Second

// Phase is the move-level state inside a running session.
type Phase int

const (
	PhaseIdle      Phase = iota
	PhasePickedOne       // one cell picked, waiting for a neighbor
	PhaseSwapping        // swap done, resolve pending
	PhaseResolving       // matches scored, refill or re-scan pending
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePickedOne:
		return "picked"
	case PhaseSwapping:
		return "swapping"
	case PhaseResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Session is the run-level state.
type Session int

const (
	SessionRunning Session = iota
	SessionExpired
)

type stepKind int

const (
	stepResolve stepKind = iota
	stepRefill
)

// continuation is a delayed resolution step. It belongs to the run that
// scheduled it and is dropped once that run is replaced.
type continuation struct {
	kind  stepKind
	wait  time.Duration
	gen   uint64
	cells []core.Pos
}

// Engine runs one Match-3 Rush session. Delayed steps are driven by Tick,
// so the engine never starts goroutines. All methods are safe for
// concurrent use; listeners are called after the engine lock is released.
type Engine struct {
	mu sync.Mutex

	cfg        config.Match3Config
	categories []CategoryInfo
	rng        core.Rand

	swapDelay   time.Duration
	clearDelay  time.Duration
	refillDelay time.Duration
	maxDepth    int
	limit       time.Duration
	warnings    []time.Duration

	grid      Grid
	picked    *core.Pos
	phase     Phase
	session   Session
	score     int
	streak    int
	depth     int
	remaining time.Duration
	fired     []bool
	message   string
	alert     string
	alertLeft time.Duration
	clearing  []core.Pos

	gen  uint64
	next *continuation

	pending []Event
	events  core.Notifier[Event]
}

// NewEngine creates an engine from cfg and starts the first session.
func NewEngine(cfg config.Match3Config, rng core.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cats, err := buildCategories(cfg.Board.Categories)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		categories:  cats,
		rng:         rng,
		swapDelay:   time.Duration(cfg.Cascade.SwapDelayMs) * time.Millisecond,
		clearDelay:  time.Duration(cfg.Cascade.ClearDelayMs) * time.Millisecond,
		refillDelay: time.Duration(cfg.Cascade.RefillDelayMs) * time.Millisecond,
		maxDepth:    cfg.Cascade.MaxDepth,
		limit:       seconds(cfg.Timer.LimitSeconds),
	}
	if e.maxDepth <= 0 {
		e.maxDepth = cfg.Board.Size * cfg.Board.Size
	}
	for _, w := range cfg.Timer.WarningSeconds {
		e.warnings = append(e.warnings, seconds(w))
	}
	e.startNewGame()
	e.pending = nil
	return e, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Subscribe registers a listener for engine events.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	return e.events.Subscribe(fn)
}

// StartNewGame deals a new random grid and restarts the countdown. Steps
// still pending from the previous run are discarded.
func (e *Engine) StartNewGame() {
	e.mu.Lock()
	e.startNewGame()
	evs := e.flush()
	e.mu.Unlock()

	e.events.Emit(evs...)
}

func (e *Engine) startNewGame() {
	e.gen++
	e.next = nil
	e.grid = RandomGrid(e.cfg.Board.Size, len(e.categories), e.rng)
	e.picked = nil
	e.phase = PhaseIdle
	e.session = SessionRunning
	e.score = 0
	e.streak = 0
	e.depth = 0
	e.remaining = e.limit
	e.fired = make([]bool, len(e.warnings))
	e.message = "Match 3 tiles to score!"
	e.alert = ""
	e.alertLeft = 0
	e.clearing = nil
}

// Tap handles a touch on the cell at (row, col). Taps are ignored once time
// has run out, outside the grid, and while a cascade is in flight.
func (e *Engine) Tap(row, col int) {
	e.mu.Lock()
	changed := e.tap(core.Pos{Row: row, Col: col})
	var evs []Event
	if changed {
		evs = e.flush()
	}
	e.mu.Unlock()

	e.events.Emit(evs...)
}

func (e *Engine) tap(p core.Pos) bool {
	if e.session == SessionExpired || e.busy() || !p.InBounds(e.grid.Size()) {
		return false
	}

	if e.picked == nil {
		e.picked = &p
		e.phase = PhasePickedOne
		e.message = "Selected " + e.categoryName(e.grid.At(p))
		return true
	}

	first := *e.picked
	if first == p {
		e.picked = nil
		e.phase = PhaseIdle
		e.message = "Selection cleared"
		return true
	}

	if !first.Adjacent(p) {
		e.picked = nil
		e.phase = PhaseIdle
		e.message = "Select adjacent tiles only!"
		return true
	}

	e.swap(first, p)
	return true
}

// Swap exchanges two adjacent cells and schedules a resolve after the swap
// delay.
func (e *Engine) Swap(a, b core.Pos) {
	e.mu.Lock()
	changed := false
	if e.session == SessionRunning && !e.busy() {
		size := e.grid.Size()
		if a.InBounds(size) && b.InBounds(size) && a.Adjacent(b) {
			e.swap(a, b)
			changed = true
		}
	}
	var evs []Event
	if changed {
		evs = e.flush()
	}
	e.mu.Unlock()

	e.events.Emit(evs...)
}

func (e *Engine) swap(a, b core.Pos) {
	e.grid.Swap(a, b)
	e.picked = nil
	e.phase = PhaseSwapping
	e.depth = 0
	e.schedule(stepResolve, e.swapDelay, nil)
}

// Resolve scans the grid once. A match scores, bumps the streak and
// schedules the refill; an empty scan resets the streak and ends the
// cascade. A refill still pending from the previous scan is applied
// first, so cleared cells are never scored twice. Resolving a grid
// without matches leaves it unchanged.
func (e *Engine) Resolve() {
	e.mu.Lock()
	if e.session == SessionRunning {
		if c := e.next; c != nil && c.kind == stepRefill {
			e.next = nil
			e.run(c)
		}
		e.next = nil
		e.resolve()
	}
	evs := e.flush()
	e.mu.Unlock()

	e.events.Emit(evs...)
}

func (e *Engine) resolve() {
	matched := FindMatches(e.grid)
	if len(matched) == 0 {
		e.streak = 0
		e.depth = 0
		e.phase = PhaseIdle
		e.clearing = nil
		e.message = "No matches. Try again!"
		return
	}

	points := e.cfg.Scoring.PointsPerRun * (len(matched) / runLength)
	e.streak++
	e.depth++
	if e.streak > 1 {
		award := points + e.streak*e.cfg.Scoring.ComboBonus
		e.score += award
		e.message = fmt.Sprintf("🔥 %dx COMBO! +%d", e.streak, award)
	} else {
		e.score += points
		e.message = fmt.Sprintf("✨ Match! +%d points!", points)
	}

	e.phase = PhaseResolving
	e.clearing = matched
	e.schedule(stepRefill, e.clearDelay, matched)
}

// refill replaces the cleared cells with random categories and re-scans
// after the refill delay, unless the cascade has reached its depth limit.
func (e *Engine) refill(cells []core.Pos) {
	for _, p := range cells {
		e.grid.Set(p, Category(e.rng.Intn(len(e.categories))))
	}
	e.clearing = nil

	if e.depth >= e.maxDepth {
		e.streak = 0
		e.depth = 0
		e.phase = PhaseIdle
		return
	}
	e.schedule(stepResolve, e.refillDelay, nil)
}

func (e *Engine) schedule(kind stepKind, wait time.Duration, cells []core.Pos) {
	e.next = &continuation{kind: kind, wait: wait, gen: e.gen, cells: cells}
}

// run executes a continuation if it still belongs to the current run.
func (e *Engine) run(c *continuation) {
	if c.gen != e.gen || e.session != SessionRunning {
		return
	}
	switch c.kind {
	case stepResolve:
		e.resolve()
	case stepRefill:
		e.refill(c.cells)
	}
}

// Tick advances the countdown and any pending cascade step by dt. The clock
// on its own does not notify subscribers; warnings, cascade steps and expiry
// do.
func (e *Engine) Tick(dt time.Duration) {
	e.mu.Lock()
	changed := e.tick(dt)
	var evs []Event
	if changed {
		evs = e.flush()
	}
	e.mu.Unlock()

	e.events.Emit(evs...)
}

func (e *Engine) tick(dt time.Duration) bool {
	if e.session == SessionExpired || dt <= 0 {
		return false
	}
	changed := false

	if e.alertLeft > 0 {
		e.alertLeft -= dt
		if e.alertLeft <= 0 {
			e.alert = ""
			e.alertLeft = 0
			changed = true
		}
	}

	e.remaining -= dt
	if e.remaining < 0 {
		e.remaining = 0
	}
	for i, w := range e.warnings {
		if !e.fired[i] && e.remaining <= w {
			e.fired[i] = true
			e.alert = warningText(w)
			e.alertLeft = alertDuration
			e.pending = append(e.pending, TimeWarning{
				Threshold: w,
				Remaining: e.remaining,
				Message:   e.alert,
			})
			changed = true
		}
	}

	if e.remaining == 0 {
		e.expire()
		return true
	}

	// Leftover time carries into the next step so a long tick can run
	// several zero-delay steps, bounded by the cascade depth.
	for e.next != nil {
		e.next.wait -= dt
		if e.next.wait > 0 {
			break
		}
		c := e.next
		e.next = nil
		e.run(c)
		changed = true
		if e.next == nil {
			break
		}
		dt = -c.wait
	}
	return changed
}

func (e *Engine) expire() {
	e.session = SessionExpired
	e.gen++
	e.next = nil
	e.picked = nil
	e.clearing = nil
	e.phase = PhaseIdle
	e.message = fmt.Sprintf("Time's up! Final score: %d", e.score)
	e.pending = append(e.pending, RunCompleted{
		Score:  e.score,
		Result: e.result(),
	})
}

// Settle runs every pending cascade step immediately.
func (e *Engine) Settle() {
	e.mu.Lock()
	changed := false
	for e.next != nil {
		c := e.next
		e.next = nil
		e.run(c)
		changed = true
	}
	var evs []Event
	if changed {
		evs = e.flush()
	}
	e.mu.Unlock()

	e.events.Emit(evs...)
}

// Result returns the leaderboard entry once time has run out.
func (e *Engine) Result() (core.RunResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != SessionExpired {
		return core.RunResult{}, false
	}
	return e.result(), true
}

func (e *Engine) result() core.RunResult {
	return core.RunResult{
		Mode:   ModeTag,
		Metric: core.MetricScore,
		Value:  int64(e.score),
	}
}

// busy reports whether a swap or cascade is still being resolved.
func (e *Engine) busy() bool {
	return e.next != nil
}

func (e *Engine) categoryName(c Category) string {
	if int(c) < 0 || int(c) >= len(e.categories) {
		return "?"
	}
	return e.categories[c].Name
}

// flush queues a state change ahead of any pending events and hands them
// over.
func (e *Engine) flush() []Event {
	evs := append([]Event{StateChanged{Snapshot: e.snapshot()}}, e.pending...)
	e.pending = nil
	return evs
}

func warningText(threshold time.Duration) string {
	secs := int(threshold / time.Second)
	if threshold > 10*time.Second {
		return fmt.Sprintf("⏳ Only %d seconds left! Be quick!", secs)
	}
	return fmt.Sprintf("⚠️ Only %d seconds left!", secs)
}
