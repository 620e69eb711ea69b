package match3

import (
	"time"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

// Package-level variables for config
var (
	configPath string
)

// SetConfigPath sets a custom config file path for Match-3 Rush.
func SetConfigPath(path string) {
	configPath = path
}

// Game hosts a Match-3 engine behind the registry.Game interface. The
// cursor stands in for touch input: Select taps the cell under it.
type Game struct {
	engine  *Engine
	cursor  core.Cursor
	tickDur time.Duration

	// Fed by engine events
	unsubscribe func()
	result      *core.RunResult
	lowTime     bool

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a new Match-3 Rush game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ModeTag, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ModeTag
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Match-3 Rush"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	m3cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		m3cfg = config.DefaultMatch3Config()
	}

	engine, err := NewEngine(m3cfg, core.NewRand(cfg.Seed))
	if err != nil {
		m3cfg = config.DefaultMatch3Config()
		engine, _ = NewEngine(m3cfg, core.NewRand(cfg.Seed))
	}

	g.watch(engine)
	g.cursor = core.NewCursor(m3cfg.Board.Size)
	g.tickDur = cfg.TickDuration()
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize(m3cfg.Board.Size)
}

// watch swaps in a new engine and listens for the end of its run.
func (g *Game) watch(engine *Engine) {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	g.engine = engine
	g.result = nil
	g.lowTime = false
	g.unsubscribe = engine.Subscribe(g.onEvent)
}

func (g *Game) onEvent(ev Event) {
	switch ev := ev.(type) {
	case TimeWarning:
		g.lowTime = true
	case RunCompleted:
		res := ev.Result
		g.result = &res
	}
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize(size int) {
	minW := size*cellWidth + 2
	if minW < 40 {
		minW = 40
	}
	minH := size*cellHeight + hudHeight + 5
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.engine.Tick(g.tickDur)

	if g.engine.Snapshot().Session == SessionExpired {
		return core.StepResult{State: g.State()}
	}

	g.cursor.Move(in)

	if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		g.engine.Tap(g.cursor.Row, g.cursor.Col)
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	snap := g.engine.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		GameOver: snap.Session == SessionExpired,
		Paused:   g.paused || g.tooSmall,
	}
}

// Result returns the final score reported by the engine once time has
// run out.
func (g *Game) Result() (core.RunResult, bool) {
	if g.result == nil {
		return core.RunResult{}, false
	}
	return *g.result, true
}

// Resize adapts the layout to a new terminal size without restarting the run.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.engine != nil {
		g.checkScreenSize(g.engine.Snapshot().Size)
	}
}
