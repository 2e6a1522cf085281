// Package storydetail shows a single story with its display modes and the
// previous/next navigation through the collection.
package storydetail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/scifi-stories-go/internal/client"
	"github.com/robertguss/scifi-stories-go/internal/controller"
	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/imageurl"
	"github.com/robertguss/scifi-stories-go/internal/messages"
	"github.com/robertguss/scifi-stories-go/internal/theme"
	"github.com/robertguss/scifi-stories-go/internal/util"
)

// Word Explorer tiles. The first tile shows the story itself.
const (
	storyTileFallbackTitle = "Space Portal"
	storyTileFallbackImage = "https://images.unsplash.com/photo-1614728263952-84ea256f9679?w=800&auto=format&fit=crop&q=60"
)

// Tile is one picture of the Word Explorer grid
type Tile struct {
	Title string
	Image string
}

var stockTiles = []Tile{
	{"Galaxy View", "https://images.unsplash.com/photo-1451187580459-43490279c0fa?w=800&auto=format&fit=crop&q=60"},
	{"Nebula", "https://images.unsplash.com/photo-1462331940025-496dfbfc7564?w=800&auto=format&fit=crop&q=60"},
	{"Space Ship", "https://images.unsplash.com/photo-1446776811953-b23d57bd21aa?w=800&auto=format&fit=crop&q=60"},
}

// chromeHeight is the rows taken by the mode bar, navigation bar and help
const chromeHeight = 8

// Model represents the story detail view
type Model struct {
	ctx      context.Context
	repo     client.Repository
	ctrl     *controller.DetailController
	keys     KeyMap
	help     help.Model
	spin     spinner.Model
	viewport viewport.Model

	width  int
	height int
}

// New creates a detail page backed by repo. Fetches run under ctx.
func New(ctx context.Context, repo client.Repository, ctrl *controller.DetailController) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		repo:     repo,
		ctrl:     ctrl,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spin:     sp,
		viewport: viewport.New(80, 20),
	}
}

// Init initializes the detail view
func (m Model) Init() tea.Cmd {
	return nil
}

// Open mounts the page for id, fetching the story and the collection
func (m *Model) Open(id string) tea.Cmd {
	storyTk, allTk := m.ctrl.Mount(m.ctx, id)
	m.syncContent()
	m.viewport.GotoTop()
	return tea.Batch(m.spin.Tick, fetchOne(m.repo, storyTk, id), fetchAll(m.repo, allTk))
}

// Unmount abandons any in-flight fetch
func (m *Model) Unmount() {
	m.ctrl.Unmount()
}

// Controller returns the page controller
func (m Model) Controller() *controller.DetailController {
	return m.ctrl
}

// SetSize sets the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.viewport.Width = max(20, width-4)
	m.viewport.Height = max(5, height-chromeHeight)
	m.syncContent()
}

func fetchOne(repo client.Repository, tk controller.Ticket, id string) tea.Cmd {
	return func() tea.Msg {
		story, err := repo.FetchOne(tk.Context(), id)
		return messages.StoryLoadedMsg{Ticket: tk, Story: story, Error: err}
	}
}

func fetchAll(repo client.Repository, tk controller.Ticket) tea.Cmd {
	return func() tea.Msg {
		stories, err := repo.FetchAll(tk.Context())
		return messages.NeighborsLoadedMsg{Ticket: tk, Stories: stories, Error: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.StoryLoadedMsg:
		m.ctrl.ResolveStory(msg.Ticket, msg.Story, msg.Error)

	case messages.NeighborsLoadedMsg:
		m.ctrl.ResolveCollection(msg.Ticket, msg.Stories, msg.Error)

	case spinner.TickMsg:
		if m.ctrl.State() == controller.StateLoading {
			m.spin, cmd = m.spin.Update(msg)
		}

	case messages.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}

	m.syncContent()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		return func() tea.Msg { return messages.NavigateBackMsg{} }

	case key.Matches(msg, m.keys.Prev):
		if n, _ := m.ctrl.Neighbors(); n.Previous != nil {
			return m.navigate(n.Previous.ID)
		}

	case key.Matches(msg, m.keys.Next):
		if n, _ := m.ctrl.Neighbors(); n.Next != nil {
			return m.navigate(n.Next.ID)
		}
	}

	if m.ctrl.State() != controller.StateLoaded {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.WordExplorer):
		m.selectMode(domain.ModeWordExplorer)
	case key.Matches(msg, m.keys.StoryAdventure):
		m.selectMode(domain.ModeStoryAdventure)
	case key.Matches(msg, m.keys.BrainQuest):
		m.selectMode(domain.ModeBrainQuest)
	case key.Matches(msg, m.keys.NextTab):
		if m.ctrl.Mode() == domain.ModeStoryAdventure {
			m.ctrl.NextTab()
			m.viewport.GotoTop()
		}
	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) selectMode(mode domain.DetailMode) {
	if m.ctrl.SelectMode(mode) {
		m.viewport.GotoTop()
	}
}

func (m *Model) navigate(id string) tea.Cmd {
	tk := m.ctrl.Navigate(m.ctx, id)
	m.viewport.GotoTop()
	return tea.Batch(m.spin.Tick, fetchOne(m.repo, tk, id))
}

func (m *Model) syncContent() {
	m.viewport.SetContent(m.renderBody())
}

// View renders the story detail
func (m Model) View() string {
	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderModes(),
		"",
		m.viewport.View(),
		"",
		m.renderNavigation(),
		m.help.View(m.keys),
	)
	return lipgloss.NewStyle().Padding(0, 2).Render(view)
}

func (m Model) renderBody() string {
	t := theme.Current

	switch m.ctrl.State() {
	case controller.StateLoading, controller.StateIdle:
		return lipgloss.NewStyle().Foreground(t.Info).Render(m.spin.View() + " Loading story...")
	case controller.StateNotFound:
		return m.renderPanel("Story not found",
			fmt.Sprintf("No story with id %q exists.", m.ctrl.ID()), t.Warning)
	case controller.StateFailed:
		msg := "Failed to load story"
		if err := m.ctrl.Err(); err != nil {
			msg = fmt.Sprintf("Failed to load story: %v", err)
		}
		return m.renderPanel("Error", msg, t.Error)
	}

	switch m.ctrl.Mode() {
	case domain.ModeStoryAdventure:
		return m.renderAdventure()
	case domain.ModeBrainQuest:
		return m.renderBrainQuest()
	default:
		return m.renderWordExplorer()
	}
}

func (m Model) renderPanel(title, msg string, color lipgloss.Color) string {
	t := theme.Current
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2).
		Width(max(30, min(80, m.width-8)))

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(title),
		"",
		lipgloss.NewStyle().Foreground(t.Foreground).Render(msg),
		"",
		lipgloss.NewStyle().Foreground(t.Subtle).Render("Press [esc] to return to the story list"),
	))
}

func (m Model) renderModes() string {
	styles := theme.NewStyles()
	enabled := m.ctrl.State() == controller.StateLoaded

	var buttons []string
	for i, mode := range domain.AllModes() {
		label := fmt.Sprintf("[%d] %s", i+1, mode)
		switch {
		case !enabled:
			buttons = append(buttons, styles.Disabled.Render(label))
		case mode == m.ctrl.Mode():
			buttons = append(buttons, styles.TabActive.Render(label))
		default:
			buttons = append(buttons, styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// Tiles returns the Word Explorer tiles for s
func Tiles(s domain.Story) []Tile {
	first := Tile{Title: s.Title, Image: imageurl.Resolve(s.Image.Value(), storyTileFallbackImage)}
	if strings.TrimSpace(first.Title) == "" {
		first.Title = storyTileFallbackTitle
	}

	row := append([]Tile{first}, stockTiles...)
	return append(row, row...)
}

func (m Model) renderWordExplorer() string {
	styles := theme.NewStyles()
	t := theme.Current

	cols := 4
	if m.viewport.Width < 100 {
		cols = 2
	}
	tileWidth := max(16, m.viewport.Width/cols-1)
	inner := tileWidth - styles.Tile.GetHorizontalFrameSize()

	tiles := Tiles(m.ctrl.Story())
	var rows []string
	for i := 0; i < len(tiles); i += cols {
		var cells []string
		for j := i; j < i+cols && j < len(tiles); j++ {
			body := lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Foreground(t.Foreground).Bold(true).Render(util.Truncate(tiles[j].Title, inner)),
				lipgloss.NewStyle().Foreground(t.Info).Render(util.Truncate(tiles[j].Image, inner)),
			)
			cells = append(cells, styles.Tile.Width(inner+styles.Tile.GetHorizontalPadding()).Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Word Explorer"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m Model) renderAdventure() string {
	styles := theme.NewStyles()

	var tabs []string
	for _, tab := range domain.AllTabs() {
		if tab == m.ctrl.Tab() {
			tabs = append(tabs, styles.TabActive.Render(tab.String()))
		} else {
			tabs = append(tabs, styles.Tab.Render(tab.String()))
		}
	}

	var content string
	switch m.ctrl.Tab() {
	case domain.TabImage:
		content = m.renderImageTab()
	case domain.TabAuthor:
		content = m.renderAuthorTab()
	default:
		content = m.renderDetailsTab()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		content,
	)
}

func (m Model) wrap() lipgloss.Style {
	return lipgloss.NewStyle().Width(max(20, min(100, m.viewport.Width-2)))
}

func field(label, value string) string {
	styles := theme.NewStyles()
	return styles.Muted.Render(label+": ") + value
}

func (m Model) renderDetailsTab() string {
	styles := theme.NewStyles()
	s := m.ctrl.Story()

	title := s.Title
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultDetailTitle
	}
	desc := s.Description
	if strings.TrimSpace(desc) == "" {
		desc = domain.DefaultDescription
	}

	lines := []string{
		styles.Title.Render(title),
	}
	if adv := s.AdventureTitle(); adv != "" {
		lines = append(lines, styles.Subtitle.Render(adv))
	}
	lines = append(lines,
		"",
		m.wrap().Render(desc),
		"",
		field("Status", styles.Badge(s.EffectiveStatus()).Render(strings.ToUpper(string(s.EffectiveStatus())))),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderImageTab() string {
	styles := theme.NewStyles()
	t := theme.Current
	s := m.ctrl.Story()

	url := imageurl.Resolve(s.Image.Value(), imageurl.DetailPlaceholder)
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Subtitle.Render("Story image"),
		"",
		lipgloss.NewStyle().Foreground(t.Info).Render(m.wrap().Render(url)),
	)
}

func (m Model) renderAuthorTab() string {
	styles := theme.NewStyles()
	a := m.ctrl.Story().Author

	name := domain.DefaultAuthorName
	bio := domain.DefaultAuthorBio
	image := imageurl.AuthorPlaceholder
	if a != nil {
		if strings.TrimSpace(a.Name) != "" {
			name = a.Name
		}
		if strings.TrimSpace(a.Bio) != "" {
			bio = a.Bio
		}
		if photo := a.PhotoURL(); photo != "" {
			image = photo
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(name),
		"",
		m.wrap().Render(bio),
		"",
		field("Publications", fmt.Sprintf("%d", a.PublicationsCount())),
		field("Rating", styles.Star.Render(util.FormatRating(a.RatingValue()))),
		field("Photo", image),
	)
}

func (m Model) renderBrainQuest() string {
	styles := theme.NewStyles()
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Brain Quest"),
		"",
		m.wrap().Render("Test your knowledge about this story with interactive quizzes"),
		"",
		styles.Disabled.Render("Start Quiz"),
	)
}

func (m Model) renderNavigation() string {
	styles := theme.NewStyles()
	n, resolved := m.ctrl.Neighbors()

	button := func(label, format string, s *domain.Story) string {
		if !resolved {
			return styles.Disabled.Render(label + " " + m.spin.View())
		}
		if s == nil {
			return styles.Disabled.Render(label)
		}
		return styles.Button.Render(fmt.Sprintf(format, util.Truncate(s.Title, 28)))
	}

	prev := button("‹ Previous", "‹ Previous: %s", n.Previous)
	next := button("Next ›", "Next: %s ›", n.Next)

	gap := max(2, m.width-4-lipgloss.Width(prev)-lipgloss.Width(next))
	return prev + strings.Repeat(" ", gap) + next
}
