package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxUsernameLen caps the name shown on leaderboards.
const maxUsernameLen = 20

// ProfileStore persists the local player's name.
type ProfileStore interface {
	Username() (string, error)
	SetUsername(name string) error
}

// OnboardingModel asks a new player for their name.
type OnboardingModel struct {
	input    textinput.Model
	profile  ProfileStore
	width    int
	height   int
	errMsg   string
	name     string
	done     bool
	quitting bool
}

// NewOnboardingModel creates the username prompt.
func NewOnboardingModel(profile ProfileStore, width, height int) OnboardingModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = maxUsernameLen
	ti.Width = maxUsernameLen
	ti.Focus()

	return OnboardingModel{
		input:   ti,
		profile: profile,
		width:   width,
		height:  height,
	}
}

// Init starts the cursor blinking.
func (m OnboardingModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m OnboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m OnboardingModel) submit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.input.Value())
	if name == "" {
		m.errMsg = "Please enter a name"
		return m, nil
	}

	if m.profile != nil {
		if err := m.profile.SetUsername(name); err != nil {
			m.errMsg = "Could not save name: " + err.Error()
			return m, nil
		}
	}

	m.name = name
	m.done = true
	return m, tea.Quit
}

// View renders the prompt.
func (m OnboardingModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("WELCOME TO THE TILE ARCADE"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("What should we call you?", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n\n")
	if m.errMsg != "" {
		b.WriteString(centerText(errStyle.Render(m.errMsg), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText(hintStyle.Render("Enter: Continue  |  Esc: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Name returns the accepted name, or "" if none was entered yet.
func (m OnboardingModel) Name() string {
	return m.name
}

// IsQuitting returns true if the user left without a name.
func (m OnboardingModel) IsQuitting() bool {
	return m.quitting
}

// EnsureUsername returns the stored player name, prompting for one first
// if none is saved. An empty name means the user quit the prompt.
func EnsureUsername(profile ProfileStore, width, height int) (string, error) {
	if profile != nil {
		if name, err := profile.Username(); err == nil && name != "" {
			return name, nil
		}
	}

	p := tea.NewProgram(
		NewOnboardingModel(profile, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := finalModel.(OnboardingModel)
	if !ok {
		return "", nil
	}
	return m.Name(), nil
}
