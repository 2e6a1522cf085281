// Package statusbar renders the bottom bar with source, counts and messages.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/scifi-stories-go/internal/theme"
)

// Model represents the status bar component
type Model struct {
	width   int
	source  string
	shown   int
	total   int
	filter  string
	message string
	isError bool
}

// New creates a new status bar model showing stories from source
func New(source string) Model {
	return Model{source: source}
}

// SetWidth sets the status bar width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetCounts sets the number of stories matching the filter and in total
func (m *Model) SetCounts(shown, total int) {
	m.shown = shown
	m.total = total
}

// SetFilter sets the filter label
func (m *Model) SetFilter(label string) {
	m.filter = label
}

// SetMessage sets a temporary status message
func (m *Model) SetMessage(msg string) {
	m.message = msg
	m.isError = false
}

// SetError sets a status message rendered as an error
func (m *Model) SetError(msg string) {
	m.message = msg
	m.isError = true
}

// ClearMessage clears the status message
func (m *Model) ClearMessage() {
	m.message = ""
	m.isError = false
}

// Message returns the current status message
func (m Model) Message() string {
	return m.message
}

// View renders the status bar
func (m Model) View() string {
	t := theme.Current

	border := lipgloss.NewStyle().
		Foreground(t.Border).
		Width(m.width).
		Render(strings.Repeat("─", max(m.width, 0)))

	source := fmt.Sprintf("API: %s",
		lipgloss.NewStyle().Foreground(t.Info).Render(m.source),
	)

	counts := fmt.Sprintf("Stories: %s/%s",
		lipgloss.NewStyle().Foreground(t.Foreground).Bold(true).Render(fmt.Sprintf("%d", m.shown)),
		lipgloss.NewStyle().Foreground(t.Foreground).Bold(true).Render(fmt.Sprintf("%d", m.total)),
	)
	if m.filter != "" {
		counts += " | Filter: " + lipgloss.NewStyle().Foreground(t.Accent).Render(m.filter)
	}

	var rightContent string
	switch {
	case m.message != "" && m.isError:
		rightContent = lipgloss.NewStyle().Foreground(t.Error).Render(m.message)
	case m.message != "":
		rightContent = lipgloss.NewStyle().Foreground(t.Warning).Render(m.message)
	default:
		rightContent = lipgloss.NewStyle().Foreground(t.Subtle).Render("Ctrl+P commands | t theme | q quit")
	}

	leftWidth := lipgloss.Width(source)
	centerWidth := lipgloss.Width(counts)
	rightWidth := lipgloss.Width(rightContent)
	totalContent := leftWidth + centerWidth + rightWidth

	var content string
	if m.width > totalContent+4 {
		gap := (m.width - totalContent - 4) / 2
		content = source + strings.Repeat(" ", gap) + counts + strings.Repeat(" ", gap) + rightContent
	} else {
		content = counts + "  " + rightContent
	}

	bar := lipgloss.NewStyle().
		Background(t.StatusBar).
		Foreground(t.Subtle).
		Width(m.width).
		Padding(0, 2).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, border, bar)
}
