package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/games/colormatch"
	"github.com/vovakirdan/tile-arcade/internal/scores"
)

// DifficultyModel lets users choose the Color Match board size.
type DifficultyModel struct {
	levels    []config.ColorMatchLevel
	cursor    int
	width     int
	height    int
	scores    *scores.Store
	keyMapper *KeyMapper
	selection config.Difficulty
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a new difficulty selection model. Levels come
// from the Color Match config so custom grids are described correctly.
func NewDifficultyModel(board *scores.Store, configPath string, width, height int) DifficultyModel {
	cfg, err := config.LoadColorMatch(configPath)
	if err != nil {
		cfg = config.DefaultColorMatchConfig()
	}

	levels := make([]config.ColorMatchLevel, 0, len(config.Difficulties()))
	for _, d := range config.Difficulties() {
		if lvl, err := cfg.Level(d); err == nil {
			levels = append(levels, lvl)
		}
	}

	return DifficultyModel{
		levels:    levels,
		width:     width,
		height:    height,
		scores:    board,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.choosing = false
			m.selection = m.levels[m.cursor].Difficulty
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("C O L O R   M A T C H", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-6s  %dx%d, %d colors",
			cursor, lvl.Difficulty.Title(), lvl.GridSize, lvl.GridSize, len(lvl.Colors))
		if m.scores != nil {
			if best, ok := m.scores.BestFor(colormatch.ModeTag(lvl.Difficulty)); ok {
				line += "  (Best: " + FormatValue(best) + ")"
			}
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen difficulty, or false if still choosing.
func (m DifficultyModel) Selected() (config.Difficulty, bool) {
	if m.choosing {
		return "", false
	}
	return m.selection, true
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the Color Match difficulty picker and returns
// the registry ID to play, or "" if the user backed out.
func RunDifficultySelector(board *scores.Store, configPath string, cfg core.RuntimeConfig) (string, error) {
	model := NewDifficultyModel(board, configPath, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return "", nil
	}

	d, ok := m.Selected()
	if !ok {
		return "", nil
	}
	return colormatch.ModeTag(d), nil
}
