// Package commandpalette is the Ctrl+P overlay listing navigation, filter,
// theme and reload commands.
package commandpalette

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/messages"
	"github.com/robertguss/scifi-stories-go/internal/theme"
)

// Command represents an action available in the command palette
type Command struct {
	Name        string
	Description string
	Shortcut    string
	Category    string
	Action      func() tea.Msg
}

// CloseMsg is sent when the palette is closed
type CloseMsg struct{}

// Model represents the command palette
type Model struct {
	width    int
	height   int
	input    textinput.Model
	commands []Command
	filtered []Command
	cursor   int
	active   bool
}

// New creates a new command palette
func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a command"
	ti.CharLimit = 64

	m := Model{input: ti}
	m.commands = m.defaultCommands()
	m.filtered = m.commands
	return m
}

// Commands returns the commands matching the current input
func (m Model) Commands() []Command {
	return m.filtered
}

func (m Model) defaultCommands() []Command {
	cmds := []Command{
		{
			Name:        "Go to Stories",
			Description: "Browse, search and filter stories",
			Shortcut:    "s",
			Category:    "Navigation",
			Action:      func() tea.Msg { return messages.NavigateMsg{View: domain.ViewStoryList} },
		},
		{
			Name:        "Reload Stories",
			Description: "Fetch the story collection again",
			Shortcut:    "r",
			Category:    "Actions",
			Action:      func() tea.Msg { return messages.ReloadMsg{} },
		},
	}

	for _, f := range domain.AllFilters() {
		cmds = append(cmds, Command{
			Name:        "Filter: " + f.Label(),
			Description: "Show " + strings.ToLower(f.Label()) + " stories",
			Category:    "Filter",
			Action:      func() tea.Msg { return messages.FilterMsg{Status: f} },
		})
	}

	for _, name := range theme.AvailableThemes() {
		th, _ := theme.ByName(name)
		cmds = append(cmds, Command{
			Name:        "Theme: " + th.Name,
			Description: "Switch to the " + th.Name + " theme",
			Category:    "Theme",
			Action:      func() tea.Msg { return messages.ThemeChangeMsg{Name: name} },
		})
	}

	return cmds
}

// Open opens the command palette
func (m *Model) Open() tea.Cmd {
	m.active = true
	m.input.Reset()
	m.cursor = 0
	m.filtered = m.commands
	return m.input.Focus()
}

// Close closes the command palette
func (m *Model) Close() {
	m.active = false
	m.input.Reset()
	m.input.Blur()
	m.cursor = 0
}

// IsActive returns whether the palette is open
func (m Model) IsActive() bool {
	return m.active
}

// SetSize sets the palette dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init initializes the palette
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+p":
		m.Close()
		return m, func() tea.Msg { return CloseMsg{} }

	case "enter":
		if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
			cmd := m.filtered[m.cursor]
			m.Close()
			return m, cmd.Action
		}
		return m, nil

	case "up", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "ctrl+j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.filterCommands()
	}
	return m, cmd
}

func (m *Model) filterCommands() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.commands
		m.cursor = 0
		return
	}

	var filtered []Command
	for _, cmd := range m.commands {
		name := strings.ToLower(cmd.Name)
		desc := strings.ToLower(cmd.Description)
		cat := strings.ToLower(cmd.Category)

		if fuzzyMatch(name, query) || fuzzyMatch(desc, query) || strings.Contains(cat, query) {
			filtered = append(filtered, cmd)
		}
	}

	m.filtered = filtered
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// fuzzyMatch checks if query runes appear in target in order
func fuzzyMatch(target, query string) bool {
	t := []rune(target)
	idx := 0
	for _, q := range query {
		found := false
		for idx < len(t) {
			if t[idx] == q {
				found = true
				idx++
				break
			}
			idx++
		}
		if !found {
			return false
		}
	}
	return true
}

// View renders the command palette
func (m Model) View() string {
	if !m.active {
		return ""
	}

	t := theme.Current

	// Calculate palette dimensions
	paletteWidth := max(20, min(60, m.width-4))
	maxItems := max(3, min(10, m.height-10))

	// Input field
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(paletteWidth - 2)

	m.input.PromptStyle = lipgloss.NewStyle().Foreground(t.Primary)
	m.input.Cursor.Style = lipgloss.NewStyle().Foreground(t.Accent)
	inputBox := inputStyle.Render(m.input.View())

	// Results list
	var resultRows []string
	visibleStart := 0
	if m.cursor >= maxItems {
		visibleStart = m.cursor - maxItems + 1
	}

	for i := visibleStart; i < len(m.filtered) && i < visibleStart+maxItems; i++ {
		cmd := m.filtered[i]
		row := m.renderCommand(i, cmd, paletteWidth-4)
		resultRows = append(resultRows, row)
	}

	resultsList := lipgloss.JoinVertical(lipgloss.Left, resultRows...)

	resultsStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(paletteWidth - 2).
		MaxHeight(maxItems * 2)

	resultsBox := resultsStyle.Render(resultsList)

	// Combine input and results
	palette := lipgloss.JoinVertical(
		lipgloss.Left,
		inputBox,
		resultsBox,
	)

	// Center the palette
	paletteStyle := lipgloss.NewStyle().
		Background(t.Background).
		Padding(1).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		paletteStyle.Render(palette),
	)
}

func (m Model) renderCommand(index int, cmd Command, width int) string {
	t := theme.Current

	isSelected := index == m.cursor

	// Name
	nameStyle := lipgloss.NewStyle().Bold(true)
	if isSelected {
		nameStyle = nameStyle.Foreground(t.Primary).Background(t.Selection)
	} else {
		nameStyle = nameStyle.Foreground(t.Foreground)
	}

	// Shortcut badge
	shortcutBadge := ""
	if cmd.Shortcut != "" {
		shortcutBadge = lipgloss.NewStyle().
			Foreground(t.Accent).
			Render(" [" + cmd.Shortcut + "]")
	}

	// Category badge
	categoryBadge := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Render(" " + cmd.Category)

	// Description
	descStyle := lipgloss.NewStyle().Foreground(t.Subtle)
	if isSelected {
		descStyle = descStyle.Background(t.Selection)
	}

	name := nameStyle.Render(cmd.Name) + shortcutBadge + categoryBadge
	desc := descStyle.Render("  " + cmd.Description)

	// Row container
	rowStyle := lipgloss.NewStyle().Width(width).Padding(0, 1)
	if isSelected {
		rowStyle = rowStyle.Background(t.Selection)
	}

	return rowStyle.Render(name + "\n" + desc)
}
