package registry

import (
	"testing"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }
func (g stubGame) Result() (core.RunResult, bool)       { return core.RunResult{}, false }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub_b", func() Game { return stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Fatal("Exists() = false for registered game")
	}
	if Exists("zz_missing") {
		t.Error("Exists() = true for unknown game")
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if g.ID() != "zz_stub_b" {
		t.Errorf("Create() returned %q", g.ID())
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() should fail for unknown game")
	}

	games := List()
	ia, ib := -1, -1
	for i, info := range games {
		switch info.ID {
		case "zz_stub_a":
			ia = i
			if info.Title != "Stub zz_stub_a" {
				t.Errorf("title = %q", info.Title)
			}
		case "zz_stub_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List() not sorted by ID: %+v", games)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return stubGame{id: "zz_dup"} })
}

func TestTitle(t *testing.T) {
	Register("zz_stub_title", func() Game { return stubGame{id: "zz_stub_title"} })

	if got, ok := Title("zz_stub_title"); !ok || got != "Stub zz_stub_title" {
		t.Errorf("Title() = %q, %v", got, ok)
	}
	if _, ok := Title("zz_missing"); ok {
		t.Error("Title() ok for unknown game")
	}
}

func TestCreateReturnsFreshGames(t *testing.T) {
	calls := 0
	Register("zz_stub_fresh", func() Game {
		calls++
		return &stubGame{id: "zz_stub_fresh"}
	})
	if calls != 1 {
		t.Fatalf("Register should build one instance for the title, built %d", calls)
	}

	a, _ := Create("zz_stub_fresh")
	b, _ := Create("zz_stub_fresh")
	if a == b {
		t.Error("Create() should return a new game per call")
	}
	if calls != 3 {
		t.Errorf("factory calls = %d, expected 3", calls)
	}
}
