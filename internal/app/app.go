// Package app is the root Bubble Tea model. It owns the header, status bar,
// starfield and command palette, and routes messages to the active page.
package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/scifi-stories-go/internal/client"
	"github.com/robertguss/scifi-stories-go/internal/components/commandpalette"
	"github.com/robertguss/scifi-stories-go/internal/components/header"
	"github.com/robertguss/scifi-stories-go/internal/components/starfield"
	"github.com/robertguss/scifi-stories-go/internal/components/statusbar"
	"github.com/robertguss/scifi-stories-go/internal/config"
	"github.com/robertguss/scifi-stories-go/internal/controller"
	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/logging"
	"github.com/robertguss/scifi-stories-go/internal/messages"
	"github.com/robertguss/scifi-stories-go/internal/theme"
	"github.com/robertguss/scifi-stories-go/internal/views/storydetail"
	"github.com/robertguss/scifi-stories-go/internal/views/storylist"
)

// Rows taken by the fixed chrome around the active page
const (
	headerHeight    = 2
	statusBarHeight = 2
	starfieldHeight = 3
)

// Model is the main application model
type Model struct {
	// Dimensions
	width  int
	height int
	ready  bool

	// Navigation
	activeView domain.View

	// Configuration
	config *config.Config
	logger *slog.Logger

	// Components
	header         header.Model
	statusbar      statusbar.Model
	starfield      starfield.Model
	commandPalette commandpalette.Model

	// Views
	storylist   storylist.Model
	storydetail storydetail.Model
}

// New creates the application model. Fetches go through repo and are bound
// to ctx; cancelling ctx abandons them.
func New(ctx context.Context, cfg *config.Config, repo client.Repository, logger *slog.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}

	list := controller.NewListController(cfg.PageSize, logger.With("page", "list"))
	detail := controller.NewDetailController(logger.With("page", "detail"))

	return Model{
		activeView:     domain.ViewStoryList,
		config:         cfg,
		logger:         logger,
		header:         header.New(),
		statusbar:      statusbar.New(cfg.APIBaseURL),
		starfield:      starfield.New(starfieldHeight, cfg.StarfieldEnabled),
		commandPalette: commandpalette.New(),
		storylist:      storylist.New(ctx, repo, list),
		storydetail:    storydetail.New(ctx, repo, detail),
	}
}

// Init opens the story list
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(header.Title),
		func() tea.Msg { return messages.NavigateMsg{View: domain.ViewStoryList} },
	)
}

// ActiveView returns the page on screen
func (m Model) ActiveView() domain.View {
	return m.activeView
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if mm, cmd, handled := m.handleCommandPaletteMsg(msg); handled {
		return mm, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg), nil

	case tea.KeyMsg:
		if mm, cmd, handled := m.handleKeyMsg(msg); handled {
			return mm, cmd
		}

	case messages.NavigateMsg:
		return m.navigate(msg.View, msg.StoryID)

	case messages.NavigateBackMsg:
		return m.navigate(domain.ViewStoryList, "")

	case messages.FilterMsg:
		if m.activeView != domain.ViewStoryList {
			var cmd tea.Cmd
			m, cmd = m.navigate(domain.ViewStoryList, "")
			cmds = append(cmds, cmd)
		}
		m.statusbar.SetMessage("Filter: " + msg.Status.Label())

	case messages.ReloadMsg:
		if m.activeView != domain.ViewStoryList {
			return m.navigate(domain.ViewStoryList, "")
		}
		m.statusbar.SetMessage("Reloading stories...")

	case messages.StoriesLoadedMsg:
		var cmd tea.Cmd
		m.storylist, cmd = m.storylist.Update(msg)
		m.syncStatus()
		return m, cmd

	case messages.StoryLoadedMsg, messages.NeighborsLoadedMsg:
		var cmd tea.Cmd
		m.storydetail, cmd = m.storydetail.Update(msg)
		m.syncHeader()
		return m, cmd

	case starfield.TickMsg:
		var cmd tea.Cmd
		m.starfield, cmd = m.starfield.Update(msg)
		return m, cmd

	case messages.ThemeChangeMsg:
		return m.handleThemeMsg(msg), nil

	default:
		if mm, handled := m.handleWatcherMsgs(msg); handled {
			return mm, nil
		}
	}

	var cmd tea.Cmd
	m, cmd = m.routeToActiveView(msg)
	cmds = append(cmds, cmd)
	m.syncStatus()
	m.syncHeader()

	return m, tea.Batch(cmds...)
}

// View renders the application
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing " + header.Title + "..."
	}

	headerView := m.header.View()

	var content string
	switch {
	case m.commandPalette.IsActive():
		content = m.commandPalette.View()
	case m.activeView == domain.ViewStoryDetail:
		content = m.storydetail.View()
	default:
		content = lipgloss.JoinVertical(lipgloss.Left, m.starfield.View(), m.storylist.View())
	}

	content = lipgloss.NewStyle().Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		headerView,
		content,
		m.statusbar.View(),
	)
}

func (m Model) contentHeight() int {
	return max(1, m.height-headerHeight-statusBarHeight)
}

// syncStatus mirrors the list counts and filter into the status bar
func (m *Model) syncStatus() {
	ctrl := m.storylist.Controller()
	if ctrl.State() != controller.StateLoaded {
		return
	}
	m.statusbar.SetCounts(ctrl.Page().Total, len(ctrl.Stories()))
	m.statusbar.SetFilter(ctrl.Filter().Status.Label())
}

// syncHeader shows the open story in the breadcrumb
func (m *Model) syncHeader() {
	m.header.SetActiveView(m.activeView)
	if m.activeView != domain.ViewStoryDetail {
		m.header.SetStoryTitle("")
		return
	}

	ctrl := m.storydetail.Controller()
	title := ctrl.ID()
	if ctrl.State() == controller.StateLoaded {
		title = ctrl.Story().Title
		if title == "" {
			title = domain.DefaultDetailTitle
		}
	}
	m.header.SetStoryTitle(title)
}

// applyTheme makes t current; views pick it up on their next render
func applyTheme(t theme.Theme) {
	theme.Current = t
}
