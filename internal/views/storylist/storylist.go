// Package storylist is the story browser: a searchable, filterable and
// paginated grid of story cards.
package storylist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/scifi-stories-go/internal/client"
	"github.com/robertguss/scifi-stories-go/internal/components/storycard"
	"github.com/robertguss/scifi-stories-go/internal/controller"
	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/messages"
	"github.com/robertguss/scifi-stories-go/internal/theme"
	"github.com/robertguss/scifi-stories-go/internal/util"
)

const wideLayoutWidth = 90

// Model represents the story list view
type Model struct {
	ctx    context.Context
	repo   client.Repository
	ctrl   *controller.ListController
	keys   KeyMap
	help   help.Model
	search textinput.Model
	spin   spinner.Model

	width  int
	height int
	cursor int
}

// New creates a story list backed by repo. Fetches run under ctx.
func New(ctx context.Context, repo client.Repository, ctrl *controller.ListController) Model {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "title or description"
	ti.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:    ctx,
		repo:   repo,
		ctrl:   ctrl,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		search: ti,
		spin:   sp,
	}
}

// Init initializes the story list
func (m Model) Init() tea.Cmd {
	return nil
}

// Mount resets the page and starts fetching the collection
func (m *Model) Mount() tea.Cmd {
	m.cursor = 0
	m.search.Reset()
	m.search.Blur()
	tk := m.ctrl.Mount(m.ctx)
	return tea.Batch(m.spin.Tick, fetchAll(m.repo, tk))
}

// Unmount abandons any in-flight fetch
func (m *Model) Unmount() {
	m.search.Blur()
	m.ctrl.Unmount()
}

// Searching reports whether the search box has focus
func (m Model) Searching() bool {
	return m.search.Focused()
}

// Controller returns the page controller
func (m Model) Controller() *controller.ListController {
	return m.ctrl
}

// SetSize sets the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// Current returns the story under the cursor
func (m Model) Current() (domain.Story, bool) {
	items := m.ctrl.Page().Items
	if m.cursor < 0 || m.cursor >= len(items) {
		return domain.Story{}, false
	}
	return items[m.cursor], true
}

func fetchAll(repo client.Repository, tk controller.Ticket) tea.Cmd {
	return func() tea.Msg {
		stories, err := repo.FetchAll(tk.Context())
		return messages.StoriesLoadedMsg{Ticket: tk, Stories: stories, Error: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.StoriesLoadedMsg:
		if m.ctrl.Resolve(msg.Ticket, msg.Stories, msg.Error) {
			m.cursor = 0
		}
		return m, nil

	case messages.FilterMsg:
		m.ctrl.SetStatus(msg.Status)
		m.cursor = 0
		return m, nil

	case messages.ReloadMsg:
		return m, m.Mount()

	case spinner.TickMsg:
		if m.ctrl.State() != controller.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case messages.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.search.Blur()
		return m, nil
	}

	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != prev {
		m.ctrl.SetSearch(m.search.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reload):
		return m, m.Mount()
	}

	if m.ctrl.State() != controller.StateLoaded {
		return m, nil
	}

	items := len(m.ctrl.Page().Items)
	cols := m.columns()

	switch {
	case key.Matches(msg, m.keys.Search):
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Filter):
		m.ctrl.CycleStatus()
		m.cursor = 0

	case key.Matches(msg, m.keys.NextPage):
		if m.ctrl.NextPage() {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.ctrl.PrevPage() {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < items {
			m.cursor += cols
		}

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursor < items-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		if s, ok := m.Current(); ok {
			id := s.ID
			return m, func() tea.Msg {
				return messages.NavigateMsg{View: domain.ViewStoryDetail, StoryID: id}
			}
		}
	}

	return m, nil
}

func (m Model) columns() int {
	if m.width >= wideLayoutWidth {
		return 2
	}
	return 1
}

// View renders the story list
func (m Model) View() string {
	t := theme.Current
	styles := theme.NewStyles()

	var body string
	switch m.ctrl.State() {
	case controller.StateLoading, controller.StateIdle:
		body = lipgloss.NewStyle().Foreground(t.Info).Render(m.spin.View() + " Loading stories...")

	case controller.StateFailed:
		body = m.renderError()

	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderFilters(),
			m.search.View(),
			"",
			m.renderGrid(),
			"",
			m.renderPagination(),
		)
	}

	title := styles.Title.Render("Explore Sci-Fi Stories")
	view := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		m.help.View(m.keys),
	)

	return lipgloss.NewStyle().Padding(0, 2).Render(view)
}

func (m Model) renderError() string {
	t := theme.Current

	msg := "Failed to load stories"
	if err := m.ctrl.Err(); err != nil {
		msg = fmt.Sprintf("Failed to load stories: %v", err)
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Error).
		Padding(1, 2).
		Width(max(30, min(80, m.width-8)))

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(t.Error).Bold(true).Render("Error"),
		"",
		lipgloss.NewStyle().Foreground(t.Foreground).Render(msg),
		"",
		lipgloss.NewStyle().Foreground(t.Subtle).Render("Press [r] to try again"),
	))
}

func (m Model) renderFilters() string {
	styles := theme.NewStyles()
	counts := m.ctrl.Counts()
	active := m.ctrl.Filter().Status

	chips := make([]string, 0, len(domain.AllFilters()))
	for _, f := range domain.AllFilters() {
		label := fmt.Sprintf("%s (%d)", f.Label(), counts[f])
		if f == active {
			chips = append(chips, styles.TabActive.Render(label))
		} else {
			chips = append(chips, styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m Model) renderGrid() string {
	t := theme.Current
	page := m.ctrl.Page()

	if len(page.Items) == 0 {
		return lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Render("No stories match the current filters")
	}

	cols := m.columns()
	cardWidth := max(30, (m.width-4)/cols-1)

	var rows []string
	for i := 0; i < len(page.Items); i += cols {
		var cards []string
		for j := i; j < i+cols && j < len(page.Items); j++ {
			cards = append(cards, storycard.Render(page.Items[j], cardWidth, j == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	visible := m.height - 12
	if visible > storycard.Height {
		cursorRow := (m.cursor / cols) * storycard.Height
		lines := strings.Split(grid, "\n")
		start := 0
		if cursorRow+storycard.Height > visible {
			start = cursorRow + storycard.Height - visible
		}
		end := min(len(lines), start+visible)
		grid = strings.Join(lines[start:end], "\n")
	}
	return grid
}

func (m Model) renderPagination() string {
	styles := theme.NewStyles()
	page := m.ctrl.Page()

	prev := styles.Disabled.Render("‹ Prev")
	if page.HasPrev() {
		prev = styles.Button.Render("‹ Prev")
	}
	next := styles.Disabled.Render("Next ›")
	if page.HasNext() {
		next = styles.Button.Render("Next ›")
	}

	info := styles.Muted.Render(fmt.Sprintf("  Page %d of %d  ·  %s  ",
		page.CurrentPage,
		max(page.TotalPages, 1),
		util.Pluralize(page.Total, "story", "stories"),
	))

	return lipgloss.JoinHorizontal(lipgloss.Center, prev, info, next)
}
