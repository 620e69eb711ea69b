package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/scores"
)

// colorMatchPrefix groups the per-difficulty Color Match registrations
// under a single menu entry.
const colorMatchPrefix = "colormatch_"

// ColorMatchID is the menu ID of the grouped Color Match entry.
const ColorMatchID = "colormatch"

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	// HasDifficulty means a difficulty must be picked before GameID is
	// playable.
	HasDifficulty bool
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	scores         *scores.Store
	player         string
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// MenuItems builds the menu entries from the registry.
func MenuItems() []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	grouped := false

	for _, g := range games {
		if strings.HasPrefix(g.ID, colorMatchPrefix) {
			if grouped {
				continue
			}
			grouped = true
			items = append(items, MenuItem{
				GameID:        ColorMatchID,
				Title:         "Color Match",
				HasDifficulty: true,
			})
			continue
		}
		items = append(items, MenuItem{
			GameID: g.ID,
			Title:  g.Title,
		})
	}

	return items
}

// NewMenuModel creates a new menu model.
func NewMenuModel(board *scores.Store, player string, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     MenuItems(),
		cursor:    0,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		scores:    board,
		player:    player,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  T I L E   A R C A D E  ", m.width))
	b.WriteString("\n\n")

	subtitle := "Select a game"
	if m.player != "" {
		subtitle = fmt.Sprintf("Welcome, %s! Select a game", m.player)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + item.Title
		if best := m.bestLabel(item); best != "" {
			line += "  (" + best + ")"
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// bestLabel describes the best recorded run for an item.
func (m MenuModel) bestLabel(item MenuItem) string {
	if m.scores == nil || item.HasDifficulty {
		return ""
	}
	best, ok := m.scores.BestFor(item.GameID)
	if !ok {
		return ""
	}
	return "Best: " + FormatValue(best)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// FormatValue renders an entry's metric for display.
func FormatValue(e scores.Entry) string {
	if e.Kind == core.MetricTime {
		return fmt.Sprintf("%.1fs", e.Duration().Seconds())
	}
	return fmt.Sprintf("%d", e.Value)
}

// formatDate renders an entry timestamp for tables.
func formatDate(t time.Time) string {
	return t.Local().Format("Jan 02 15:04")
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Item            MenuItem
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(board *scores.Store, player string, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(board, player, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.Item = *m.Selected()
	} else {
		result.Quit = true
	}

	return result, nil
}
