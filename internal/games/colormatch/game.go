package colormatch

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

// SetConfigPath sets a custom config file path for Color Match.
func SetConfigPath(path string) {
	configPath = path
}

// Game hosts a Color Match engine behind the registry.Game interface.
// A cursor stands in for touch input: Select taps the tile under it and
// Confirm submits the selection.
type Game struct {
	difficulty config.Difficulty
	engine     *Engine
	cursor     core.Cursor
	tickDur    time.Duration

	// Fed by engine events
	unsubscribe func()
	result      *core.RunResult

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a Color Match game for the given difficulty.
func New(d config.Difficulty) *Game {
	return &Game{difficulty: d}
}

func init() {
	for _, d := range config.Difficulties() {
		registry.Register(ModeTag(d), func() registry.Game {
			return New(d)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ModeTag(g.difficulty)
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Color Match (" + g.difficulty.Title() + ")"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	level := g.loadLevel()

	engine, err := NewEngine(level, core.NewRand(cfg.Seed))
	if err != nil {
		// Custom config was unusable; the built-in layout always is.
		level, _ = config.DefaultColorMatchConfig().Level(g.difficulty)
		engine, _ = NewEngine(level, core.NewRand(cfg.Seed))
	}

	g.watch(engine)
	g.cursor = core.NewCursor(level.GridSize)
	g.tickDur = cfg.TickDuration()
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize(level.GridSize)
}

// watch swaps in a new engine and records the run result it reports.
func (g *Game) watch(engine *Engine) {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	g.engine = engine
	g.result = nil
	g.unsubscribe = engine.Subscribe(func(ev Event) {
		if done, ok := ev.(RunCompleted); ok {
			res := done.Result
			g.result = &res
		}
	})
}

func (g *Game) loadLevel() config.ColorMatchLevel {
	cfg, err := config.LoadColorMatch(configPath)
	if err != nil {
		cfg = config.DefaultColorMatchConfig()
	}
	level, err := cfg.Level(g.difficulty)
	if err != nil {
		level, _ = config.DefaultColorMatchConfig().Level(g.difficulty)
	}
	return level
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize(gridSize int) {
	minW := gridSize*cellWidth + 2
	if minW < 44 {
		minW = 44
	}
	minH := gridSize*cellHeight + hudHeight + 5
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

	if g.engine.Snapshot().Status == StatusAllMatched {
		return core.StepResult{State: g.State()}
	}

	g.cursor.Move(in)

	if in.Has(core.ActionSelect) {
		g.engine.Tap(g.cursor.Index(g.engine.level.GridSize))
	}
	if in.Has(core.ActionConfirm) {
		// An empty selection only updates the message.
		_ = g.engine.ConfirmMatch()
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
		Score:    snap.Matched,
		GameOver: snap.Status == StatusAllMatched,
		Paused:   g.paused || g.tooSmall,
	}
}

// Result returns the finished run's elapsed time.
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
		g.checkScreenSize(g.engine.level.GridSize)
	}
}
