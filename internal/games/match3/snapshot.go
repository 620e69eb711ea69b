package match3

import (
	"time"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

// Snapshot is an immutable copy of the session for rendering and tests.
type Snapshot struct {
	Size       int
	Grid       Grid
	Categories []CategoryInfo
	Picked     *core.Pos
	Clearing   []core.Pos // matched cells waiting for refill
	Phase      Phase
	Session    Session
	Score      int
	Streak     int
	Remaining  time.Duration
	Limit      time.Duration
	Message    string
	Alert      string
	Busy       bool
}

// IsPicked reports whether p is the currently picked cell.
func (s Snapshot) IsPicked(p core.Pos) bool {
	return s.Picked != nil && *s.Picked == p
}

// IsClearing reports whether p was just matched and awaits refill.
func (s Snapshot) IsClearing(p core.Pos) bool {
	for _, c := range s.Clearing {
		if c == p {
			return true
		}
	}
	return false
}

// Snapshot returns the current session state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() Snapshot {
	var picked *core.Pos
	if e.picked != nil {
		p := *e.picked
		picked = &p
	}
	cats := make([]CategoryInfo, len(e.categories))
	copy(cats, e.categories)

	return Snapshot{
		Size:       e.grid.Size(),
		Grid:       e.grid.Clone(),
		Categories: cats,
		Picked:     picked,
		Clearing:   append([]core.Pos(nil), e.clearing...),
		Phase:      e.phase,
		Session:    e.session,
		Score:      e.score,
		Streak:     e.streak,
		Remaining:  e.remaining,
		Limit:      e.limit,
		Message:    e.message,
		Alert:      e.alert,
		Busy:       e.busy(),
	}
}

// Event is emitted to subscribers after engine operations.
type Event interface {
	match3Event()
}

// StateChanged carries the session state after any visible change.
type StateChanged struct {
	Snapshot Snapshot
}

func (StateChanged) match3Event() {}

// RunCompleted is emitted once when the countdown reaches zero.
type RunCompleted struct {
	Score  int
	Result core.RunResult
}

func (RunCompleted) match3Event() {}

// TimeWarning is emitted once per session for each configured threshold,
// the first time the remaining time drops to or below it.
type TimeWarning struct {
	Threshold time.Duration
	Remaining time.Duration
	Message   string
}

func (TimeWarning) match3Event() {}
