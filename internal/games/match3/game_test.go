package match3

import (
	"testing"
	"time"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 11}
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameRegistered(t *testing.T) {
	g, err := registry.Create(ModeTag)
	if err != nil {
		t.Fatalf("match3 should be registered: %v", err)
	}
	if g.Title() != "Match-3 Rush" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestGameCursorSwap(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	g.Step(press(core.ActionSelect))
	snap := g.engine.Snapshot()
	if snap.Picked == nil || *snap.Picked != (core.Pos{}) {
		t.Fatalf("expected top-left pick, got %v", snap.Picked)
	}

	g.Step(press(core.ActionRight))
	g.Step(press(core.ActionSelect))
	snap = g.engine.Snapshot()
	if snap.Picked != nil {
		t.Error("pick should clear after swap")
	}
	if snap.Phase != PhaseSwapping {
		t.Errorf("Phase = %v, expected swapping", snap.Phase)
	}
}

func TestGameRunsOutOfTime(t *testing.T) {
	g := New()
	cfg := testConfig()
	g.Reset(cfg)

	steps := 0
	for !g.State().GameOver {
		g.Step(press())
		steps++
		if steps > 61*cfg.TickRate {
			t.Fatal("countdown never expired")
		}
	}

	result, ok := g.Result()
	if !ok {
		t.Fatal("Result() should be available after time is up")
	}
	if result.Mode != ModeTag || result.Metric != core.MetricScore {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestGameTracksEngineEvents(t *testing.T) {
	g := New()
	cfg := testConfig()
	g.Reset(cfg)

	for range 31 * cfg.TickRate {
		g.Step(press())
	}
	if !g.lowTime {
		t.Error("low-time warning should have been seen after 31s")
	}
	if _, ok := g.Result(); ok {
		t.Error("Result() should not be available while time remains")
	}

	for !g.State().GameOver {
		g.Step(press())
	}
	if _, ok := g.Result(); !ok {
		t.Fatal("RunCompleted should have recorded the result")
	}

	// A new run drops the old result and listens to the new engine only
	old := g.engine
	g.Reset(cfg)
	if _, ok := g.Result(); ok {
		t.Error("Reset should clear the previous result")
	}
	if g.lowTime {
		t.Error("Reset should clear the low-time flag")
	}
	old.StartNewGame()
	old.Tick(time.Minute)
	if _, ok := g.Result(); ok {
		t.Error("events from a replaced engine should be ignored")
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	g.Step(press(core.ActionPause))
	before := g.engine.Snapshot().Remaining
	for range 30 {
		g.Step(press())
	}
	if g.engine.Snapshot().Remaining != before {
		t.Error("countdown advanced while paused")
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"60s", "60.00"},
		{"9.57s", "09.57"},
		{"0s", "00.00"},
	}
	for _, tc := range tests {
		d, err := time.ParseDuration(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := formatCountdown(d); got != tc.want {
			t.Errorf("formatCountdown(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderShowsSymbols(t *testing.T) {
	g := New()
	cfg := testConfig()
	g.Reset(cfg)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	symbols := make(map[rune]bool)
	for _, info := range knownCategories {
		symbols[info.Symbol] = true
	}
	count := 0
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if symbols[screen.Get(x, y)] {
				count++
			}
		}
	}
	if count != 25 {
		t.Errorf("expected 25 tile symbols, got %d", count)
	}
}
