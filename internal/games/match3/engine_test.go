package match3

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
)

// scripted hands out refill categories in a fixed order.
type scripted struct {
	vals []int
	i    int
}

func (s *scripted) Intn(n int) int {
	if s.i >= len(s.vals) {
		return 0
	}
	v := s.vals[s.i] % n
	s.i++
	return v
}

func (s *scripted) Shuffle(int, func(i, j int)) {}

// constant always picks the first category.
type constant struct{}

func (constant) Intn(int) int                { return 0 }
func (constant) Shuffle(int, func(i, j int)) {}

// newTestEngine returns an engine with default settings playing on grid,
// refilling cleared cells with the given categories.
func newTestEngine(t *testing.T, grid Grid, refills ...int) *Engine {
	t.Helper()
	e, err := NewEngine(config.DefaultMatch3Config(), core.NewRand(1))
	require.NoError(t, err)
	e.grid = grid
	e.rng = &scripted{vals: refills}
	return e
}

// nearRunGrid puts [Red,Red,Blue,Red,Blue] in the top row of a stable grid.
func nearRunGrid() Grid {
	g := stableGrid()
	copy(g[0], []Category{0, 0, 1, 0, 1})
	return g
}

type recorder struct {
	states    []Snapshot
	completed []RunCompleted
	warnings  []TimeWarning
}

func record(e *Engine) *recorder {
	r := &recorder{}
	e.Subscribe(func(ev Event) {
		switch ev := ev.(type) {
		case StateChanged:
			r.states = append(r.states, ev.Snapshot)
		case RunCompleted:
			r.completed = append(r.completed, ev)
		case TimeWarning:
			r.warnings = append(r.warnings, ev)
		}
	})
	return r
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Board.Categories = []string{"red_star", "plaid_hexagon"}
	_, err := NewEngine(cfg, constant{})
	assert.Error(t, err)

	cfg = config.DefaultMatch3Config()
	cfg.Board.Size = 2
	_, err = NewEngine(cfg, constant{})
	assert.Error(t, err)
}

func TestStartNewGameState(t *testing.T) {
	e, err := NewEngine(config.DefaultMatch3Config(), core.NewRand(5))
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Equal(t, 5, snap.Size)
	assert.Equal(t, 60*time.Second, snap.Remaining)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0, snap.Streak)
	assert.Equal(t, SessionRunning, snap.Session)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, "Match 3 tiles to score!", snap.Message)
	assert.Len(t, snap.Categories, 5)
}

func TestTapPickAndUnpick(t *testing.T) {
	e := newTestEngine(t, stableGrid())

	e.Tap(0, 0)
	snap := e.Snapshot()
	require.NotNil(t, snap.Picked)
	assert.Equal(t, core.Pos{Row: 0, Col: 0}, *snap.Picked)
	assert.Equal(t, PhasePickedOne, snap.Phase)
	assert.Equal(t, "Selected Red Star", snap.Message)

	e.Tap(0, 0)
	snap = e.Snapshot()
	assert.Nil(t, snap.Picked)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, "Selection cleared", snap.Message)
}

func TestTapRejectsNonAdjacent(t *testing.T) {
	grid := stableGrid()
	e := newTestEngine(t, grid.Clone())

	e.Tap(0, 0)
	e.Tap(1, 1)

	snap := e.Snapshot()
	assert.Nil(t, snap.Picked)
	assert.Equal(t, "Select adjacent tiles only!", snap.Message)
	assert.Equal(t, grid, snap.Grid)
	assert.False(t, snap.Busy)
}

func TestTapOutOfRangeIsIgnored(t *testing.T) {
	e := newTestEngine(t, stableGrid())
	rec := record(e)

	e.Tap(-1, 0)
	e.Tap(0, 5)

	assert.Empty(t, rec.states)
	assert.Nil(t, e.Snapshot().Picked)
}

func TestSwapCompletingRunScoresTen(t *testing.T) {
	e := newTestEngine(t, nearRunGrid(), 2, 3, 4)

	e.Tap(0, 2)
	e.Tap(0, 3)

	snap := e.Snapshot()
	assert.Equal(t, []Category{0, 0, 0, 1, 1}, snap.Grid[0])
	assert.Equal(t, PhaseSwapping, snap.Phase)
	assert.True(t, snap.Busy)
	assert.Nil(t, snap.Picked)
	assert.Equal(t, 0, snap.Score)

	// Cells are locked until the cascade finishes
	e.Tap(4, 4)
	assert.Nil(t, e.Snapshot().Picked)

	e.Tick(300 * time.Millisecond)
	snap = e.Snapshot()
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, 1, snap.Streak)
	assert.Equal(t, "✨ Match! +10 points!", snap.Message)
	assert.Equal(t, PhaseResolving, snap.Phase)
	assert.Equal(t, []core.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, snap.Clearing)

	e.Tick(600 * time.Millisecond)
	snap = e.Snapshot()
	assert.Equal(t, []Category{2, 3, 4, 1, 1}, snap.Grid[0])
	assert.Empty(t, snap.Clearing)
	assert.True(t, snap.Busy)

	e.Tick(400 * time.Millisecond)
	snap = e.Snapshot()
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, 0, snap.Streak)
	assert.Equal(t, "No matches. Try again!", snap.Message)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.False(t, snap.Busy)
}

func TestCascadeComboBonus(t *testing.T) {
	// The first refill lines up three Blue Circles at columns 2-4
	e := newTestEngine(t, nearRunGrid(), 2, 3, 1, 2, 3, 4)
	rec := record(e)

	e.Swap(core.Pos{Row: 0, Col: 2}, core.Pos{Row: 0, Col: 3})
	for range 10 {
		e.Tick(100 * time.Millisecond)
		e.Tick(200 * time.Millisecond)
	}

	snap := e.Snapshot()
	assert.Equal(t, 30, snap.Score)
	assert.Equal(t, 0, snap.Streak)
	assert.False(t, snap.Busy)
	assert.Equal(t, []Category{2, 3, 2, 3, 4}, snap.Grid[0])

	var messages []string
	for _, s := range rec.states {
		messages = append(messages, s.Message)
	}
	assert.Contains(t, messages, "✨ Match! +10 points!")
	assert.Contains(t, messages, "🔥 2x COMBO! +20")
	assert.Equal(t, "No matches. Try again!", messages[len(messages)-1])
}

func TestSettleRunsCascadeImmediately(t *testing.T) {
	e := newTestEngine(t, nearRunGrid(), 2, 3, 1, 2, 3, 4)

	e.Swap(core.Pos{Row: 0, Col: 2}, core.Pos{Row: 0, Col: 3})
	e.Settle()

	snap := e.Snapshot()
	assert.Equal(t, 30, snap.Score)
	assert.False(t, snap.Busy)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, 60*time.Second, snap.Remaining)
}

func TestResolveIsIdempotentOnStableGrid(t *testing.T) {
	grid := stableGrid()
	e := newTestEngine(t, grid.Clone())

	e.Resolve()
	first := e.Snapshot()
	e.Resolve()
	second := e.Snapshot()

	assert.Equal(t, grid, first.Grid)
	assert.Equal(t, first.Grid, second.Grid)
	assert.Equal(t, 0, second.Score)
	assert.Equal(t, 0, second.Streak)
	assert.Equal(t, "No matches. Try again!", second.Message)
	assert.False(t, second.Busy)
}

func TestResolveAppliesPendingRefillFirst(t *testing.T) {
	e := newTestEngine(t, nearRunGrid(), 2, 3, 4)

	e.Swap(core.Pos{Row: 0, Col: 2}, core.Pos{Row: 0, Col: 3})
	e.Resolve()
	snap := e.Snapshot()
	require.Equal(t, 10, snap.Score)
	require.Equal(t, 1, snap.Streak)
	require.True(t, snap.Busy)

	e.Resolve()
	snap = e.Snapshot()
	assert.Equal(t, []Category{2, 3, 4, 1, 1}, snap.Grid[0])
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, 0, snap.Streak)
	assert.Empty(t, snap.Clearing)
	assert.False(t, snap.Busy)
	assert.Equal(t, PhaseIdle, snap.Phase)

	e.Resolve()
	assert.Equal(t, 10, e.Snapshot().Score)
}

func TestCascadeTerminatesForEverySeed(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		e, err := NewEngine(config.DefaultMatch3Config(), core.NewRand(seed))
		require.NoError(t, err)

		e.Resolve()
		e.Settle()
		e.Swap(core.Pos{Row: 2, Col: 2}, core.Pos{Row: 2, Col: 3})
		e.Settle()

		snap := e.Snapshot()
		require.False(t, snap.Busy, "seed %d", seed)
		require.Equal(t, PhaseIdle, snap.Phase, "seed %d", seed)
		require.Empty(t, snap.Clearing, "seed %d", seed)
	}
}

func TestCascadeDepthLimit(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Cascade.MaxDepth = 4

	// Every refill recreates a full board of Red Stars
	e, err := NewEngine(cfg, constant{})
	require.NoError(t, err)

	e.Resolve()
	e.Settle()

	snap := e.Snapshot()
	assert.False(t, snap.Busy)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, 0, snap.Streak)
	// 25 cells score 80 per step, plus 10, 15 and 20 for the combos
	assert.Equal(t, 80+90+95+100, snap.Score)
}

func TestDefaultDepthLimitStopsEndlessCascade(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Cascade.SwapDelayMs = 0
	cfg.Cascade.ClearDelayMs = 0
	cfg.Cascade.RefillDelayMs = 0

	e, err := NewEngine(cfg, constant{})
	require.NoError(t, err)

	e.Swap(core.Pos{Row: 0, Col: 0}, core.Pos{Row: 0, Col: 1})
	e.Tick(time.Millisecond)

	snap := e.Snapshot()
	assert.False(t, snap.Busy)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Positive(t, snap.Score)
}

func TestLowTimeWarningsFireOnce(t *testing.T) {
	e := newTestEngine(t, stableGrid())
	rec := record(e)

	for range 60_000 {
		e.Tick(time.Millisecond)
	}
	for range 100 {
		e.Tick(time.Second)
	}

	require.Len(t, rec.warnings, 2)
	assert.Equal(t, 30*time.Second, rec.warnings[0].Threshold)
	assert.Equal(t, 30*time.Second, rec.warnings[0].Remaining)
	assert.Equal(t, "⏳ Only 30 seconds left! Be quick!", rec.warnings[0].Message)
	assert.Equal(t, 10*time.Second, rec.warnings[1].Threshold)
	assert.Equal(t, 10*time.Second, rec.warnings[1].Remaining)
	assert.Equal(t, "⚠️ Only 10 seconds left!", rec.warnings[1].Message)

	require.Len(t, rec.completed, 1)
	assert.Equal(t, core.RunResult{Mode: ModeTag, Metric: core.MetricScore, Value: 0}, rec.completed[0].Result)
}

func TestCoarseTickFiresSkippedWarnings(t *testing.T) {
	e := newTestEngine(t, stableGrid())
	rec := record(e)

	e.Tick(25 * time.Second)
	assert.Empty(t, rec.warnings)

	e.Tick(25 * time.Second)
	require.Len(t, rec.warnings, 2)
	assert.Equal(t, 10*time.Second, e.Snapshot().Remaining)

	e.Tick(time.Second)
	assert.Len(t, rec.warnings, 2)
}

func TestAlertClearsAfterDelay(t *testing.T) {
	e := newTestEngine(t, stableGrid())

	e.Tick(30 * time.Second)
	assert.Equal(t, "⏳ Only 30 seconds left! Be quick!", e.Snapshot().Alert)

	e.Tick(time.Second)
	assert.NotEmpty(t, e.Snapshot().Alert)

	e.Tick(time.Second)
	assert.Empty(t, e.Snapshot().Alert)
}

func TestExpiryCancelsPendingSteps(t *testing.T) {
	e := newTestEngine(t, nearRunGrid(), 2, 3, 4)
	rec := record(e)

	e.Swap(core.Pos{Row: 0, Col: 2}, core.Pos{Row: 0, Col: 3})
	e.Tick(60 * time.Second)

	snap := e.Snapshot()
	assert.Equal(t, SessionExpired, snap.Session)
	assert.False(t, snap.Busy)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, time.Duration(0), snap.Remaining)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, 0, rec.completed[0].Score)

	// Nothing moves after time is up
	e.Settle()
	e.Tap(1, 1)
	e.Swap(core.Pos{Row: 1, Col: 1}, core.Pos{Row: 1, Col: 2})
	e.Tick(time.Second)

	after := e.Snapshot()
	assert.Equal(t, snap.Grid, after.Grid)
	assert.Nil(t, after.Picked)
	assert.Equal(t, 0, after.Score)
	assert.Len(t, rec.completed, 1)

	result, ok := e.Result()
	require.True(t, ok)
	assert.Equal(t, int64(0), result.Value)
}

func TestScoreIsFinalAtExpiry(t *testing.T) {
	e := newTestEngine(t, nearRunGrid(), 2, 3, 4)
	rec := record(e)

	e.Swap(core.Pos{Row: 0, Col: 2}, core.Pos{Row: 0, Col: 3})
	e.Settle()
	e.Tick(time.Minute)

	require.Len(t, rec.completed, 1)
	assert.Equal(t, 10, rec.completed[0].Score)
	assert.Equal(t, core.RunResult{Mode: "match3", Metric: core.MetricScore, Value: 10}, rec.completed[0].Result)
}

func TestStartNewGameDropsStaleSteps(t *testing.T) {
	e := newTestEngine(t, nearRunGrid(), 2, 3, 4)

	e.Swap(core.Pos{Row: 0, Col: 2}, core.Pos{Row: 0, Col: 3})
	e.Tick(100 * time.Millisecond)
	require.True(t, e.Snapshot().Busy)
	e.StartNewGame()
	e.Tick(time.Second)

	snap := e.Snapshot()
	assert.Equal(t, 0, snap.Score)
	assert.False(t, snap.Busy)
	assert.Equal(t, 59*time.Second, snap.Remaining)
	assert.Equal(t, "Match 3 tiles to score!", snap.Message)
}

func TestStartNewGameRearmsWarnings(t *testing.T) {
	e := newTestEngine(t, stableGrid())
	rec := record(e)

	e.Tick(time.Minute)
	require.Len(t, rec.completed, 1)
	_, ok := e.Result()
	require.True(t, ok)

	e.StartNewGame()
	_, ok = e.Result()
	assert.False(t, ok)

	e.Tick(51 * time.Second)
	assert.Len(t, rec.warnings, 4)
	assert.Equal(t, SessionRunning, e.Snapshot().Session)
}

func TestStaleContinuationIsDropped(t *testing.T) {
	e := newTestEngine(t, nearRunGrid(), 2, 3, 4)
	e.Swap(core.Pos{Row: 0, Col: 2}, core.Pos{Row: 0, Col: 3})

	stale := e.next
	require.NotNil(t, stale)
	e.gen++
	e.next = nil
	e.run(stale)

	assert.Equal(t, 0, e.Snapshot().Score)
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t, stableGrid())
	e.Tap(0, 0)

	snap := e.Snapshot()
	snap.Grid[0][0] = 4
	*snap.Picked = core.Pos{Row: 3, Col: 3}

	fresh := e.Snapshot()
	assert.Equal(t, Category(0), fresh.Grid[0][0])
	assert.Equal(t, core.Pos{Row: 0, Col: 0}, *fresh.Picked)
}
