package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sessionKey(m SessionModel, key string) (SessionModel, tea.Cmd) {
	next, cmd := m.Update(keyMsg(key))
	return next.(SessionModel), cmd
}

func TestSessionDefaultsToGuest(t *testing.T) {
	m := NewSessionModel(testBoard(), "", testConfig(), "   ")
	if m.username != "guest" {
		t.Errorf("expected guest, got %q", m.username)
	}
}

func TestSessionColorMatchFlow(t *testing.T) {
	m := NewSessionModel(testBoard(), "", testConfig(), "ada")

	m, _ = sessionKey(m, "enter")
	if m.screen != screenDifficulty {
		t.Fatalf("expected difficulty screen, got %d", m.screen)
	}

	m, _ = sessionKey(m, "esc")
	if m.screen != screenMenu {
		t.Fatalf("back should return to the menu, got %d", m.screen)
	}

	m, _ = sessionKey(m, "enter")
	m, _ = sessionKey(m, "down")
	m, cmd := sessionKey(m, "enter")
	if m.screen != screenGame {
		t.Fatalf("expected game screen, got %d", m.screen)
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}
	if id := m.gameModel.game.ID(); id != "colormatch_medium" {
		t.Errorf("expected colormatch_medium, got %q", id)
	}
	if m.quitting {
		t.Error("session should not quit when a game starts")
	}
}

func TestSessionMatch3AndScoreboard(t *testing.T) {
	m := NewSessionModel(testBoard(), "", testConfig(), "ada")

	m, _ = sessionKey(m, "tab")
	if m.screen != screenScoreboard {
		t.Fatalf("expected scoreboard, got %d", m.screen)
	}
	if !strings.Contains(m.View(), "LEADERBOARD") {
		t.Error("scoreboard view should show the leaderboard title")
	}

	m, _ = sessionKey(m, "esc")
	if m.screen != screenMenu {
		t.Fatalf("expected menu, got %d", m.screen)
	}

	m, _ = sessionKey(m, "down")
	m, _ = sessionKey(m, "enter")
	if m.screen != screenGame || m.gameModel.game.ID() != "match3" {
		t.Fatalf("expected match3 to start, screen=%d", m.screen)
	}

	// Pause then back returns to the menu
	m, _ = sessionKey(m, "p")
	next, _ := m.Update(TickMsg{})
	m = next.(SessionModel)
	m, _ = sessionKey(m, "esc")
	if m.screen != screenMenu {
		t.Errorf("expected menu after backing out of a paused game, got %d", m.screen)
	}
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := NewSessionModel(testBoard(), "", testConfig(), "ada")
	m, cmd := sessionKey(m, "q")
	if !m.quitting || cmd == nil {
		t.Error("q should end the session")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
