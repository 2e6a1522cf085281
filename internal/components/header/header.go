// Package header renders the top bar: title, breadcrumb and palette hint.
package header

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/theme"
	"github.com/robertguss/scifi-stories-go/internal/util"
)

// Title is the application name shown in the header
const Title = "Sci-Fi Stories"

// Model represents the header component
type Model struct {
	width      int
	activeView domain.View
	storyTitle string
}

// New creates a new header model
func New() Model {
	return Model{}
}

// SetWidth sets the header width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetActiveView sets the currently active view
func (m *Model) SetActiveView(view domain.View) {
	m.activeView = view
}

// SetStoryTitle sets the breadcrumb shown on the detail view
func (m *Model) SetStoryTitle(title string) {
	m.storyTitle = title
}

// View renders the header
func (m Model) View() string {
	t := theme.Current

	title := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Render("✦ " + Title)

	shortcut := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Render("[" + domain.ViewStoryList.Shortcut() + "]")

	crumbs := []string{shortcut + " " + domain.ViewStoryList.String()}
	if m.activeView == domain.ViewStoryDetail {
		name := m.storyTitle
		if name == "" {
			name = domain.ViewStoryDetail.String()
		}
		crumbs = append(crumbs, util.Truncate(name, 40))
	}

	for i, c := range crumbs {
		style := lipgloss.NewStyle().Foreground(t.Subtle)
		if i == len(crumbs)-1 {
			style = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
		}
		crumbs[i] = style.Render(c)
	}
	nav := strings.Join(crumbs, lipgloss.NewStyle().Foreground(t.Subtle).Render(" › "))

	paletteHint := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Render("[Ctrl+P] Command Palette")

	titleWidth := lipgloss.Width(title)
	navWidth := lipgloss.Width(nav)
	hintWidth := lipgloss.Width(paletteHint)
	totalContent := titleWidth + navWidth + hintWidth + 8

	spacing := "  "
	if m.width > totalContent {
		gap1 := (m.width - totalContent) / 2
		gap2 := m.width - totalContent - gap1
		spacing = strings.Repeat(" ", gap1)
		paletteHint = strings.Repeat(" ", gap2) + paletteHint
	}

	content := title + spacing + nav + paletteHint

	header := lipgloss.NewStyle().
		Background(t.HeaderBg).
		Foreground(t.Foreground).
		Width(m.width).
		Padding(0, 2).
		Render(content)

	border := lipgloss.NewStyle().
		Foreground(t.Border).
		Width(m.width).
		Render(strings.Repeat("─", max(m.width, 0)))

	return lipgloss.JoinVertical(lipgloss.Left, header, border)
}
