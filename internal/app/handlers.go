package app

// handlers.go holds the focused handlers split out of Update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robertguss/scifi-stories-go/internal/components/commandpalette"
	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/messages"
	"github.com/robertguss/scifi-stories-go/internal/theme"
	"github.com/robertguss/scifi-stories-go/internal/watcher"
)

// handleCommandPaletteMsg handles messages when command palette is active
// Returns (model, cmd, handled) where handled=true means the message was fully processed
func (m Model) handleCommandPaletteMsg(msg tea.Msg) (Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case commandpalette.CloseMsg:
		return m, nil, true
	case tea.KeyMsg:
		if !m.commandPalette.IsActive() {
			return m, nil, false
		}
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		var cmd tea.Cmd
		m.commandPalette, cmd = m.commandPalette.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// handleKeyMsg handles keyboard input messages
// Returns (model, cmd, handled)
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "ctrl+p":
		m.commandPalette.SetSize(m.width, m.contentHeight())
		return m, m.commandPalette.Open(), true
	}

	// The search box owns every other key while focused
	if m.activeView == domain.ViewStoryList && m.storylist.Searching() {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		return m.quit()

	case "t":
		next := theme.NextTheme(m.config.Theme)
		return m, func() tea.Msg { return messages.ThemeChangeMsg{Name: next} }, true

	case "s":
		if m.activeView != domain.ViewStoryList {
			mm, cmd := m.navigate(domain.ViewStoryList, "")
			return mm, cmd, true
		}
	}

	return m, nil, false
}

func (m Model) quit() (Model, tea.Cmd, bool) {
	m.storylist.Unmount()
	m.storydetail.Unmount()
	m.starfield.Stop()
	return m, tea.Quit, true
}

// navigate unmounts the page on screen and mounts view. Returning to the
// list always remounts it: the collection is fetched again and filters reset.
func (m Model) navigate(view domain.View, storyID string) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch m.activeView {
	case domain.ViewStoryList:
		m.storylist.Unmount()
	case domain.ViewStoryDetail:
		m.storydetail.Unmount()
	}

	m.activeView = view
	m.statusbar.ClearMessage()

	switch view {
	case domain.ViewStoryDetail:
		m.starfield.Stop()
		m.logger.Debug("opening story", "story_id", storyID)
		cmds = append(cmds, m.storydetail.Open(storyID))
	default:
		m.activeView = domain.ViewStoryList
		cmds = append(cmds, m.storylist.Mount(), m.starfield.Start())
	}

	m.syncHeader()
	return m, tea.Batch(cmds...)
}

// handleWindowSizeMsg handles window resize messages
func (m Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.header.SetWidth(msg.Width)
	m.statusbar.SetWidth(msg.Width)
	m.starfield.SetWidth(msg.Width)

	contentHeight := m.contentHeight()
	m.commandPalette.SetSize(msg.Width, contentHeight)

	listMsg := messages.WindowSizeMsg{Width: msg.Width, Height: max(1, contentHeight-starfieldHeight)}
	detailMsg := messages.WindowSizeMsg{Width: msg.Width, Height: contentHeight}
	m.storylist, _ = m.storylist.Update(listMsg)
	m.storydetail, _ = m.storydetail.Update(detailMsg)

	return m
}

// handleThemeMsg switches to a built-in theme
func (m Model) handleThemeMsg(msg messages.ThemeChangeMsg) Model {
	t, ok := theme.ByName(msg.Name)
	if !ok {
		m.statusbar.SetError("Unknown theme: " + msg.Name)
		return m
	}
	applyTheme(t)
	m.config.Theme = msg.Name
	m.logger.Info("theme changed", "theme", msg.Name)
	m.statusbar.SetMessage("Theme changed to " + t.Name)
	return m
}

// handleWatcherMsgs reloads the custom theme file when it changes on disk
func (m Model) handleWatcherMsgs(msg tea.Msg) (Model, bool) {
	switch msg := msg.(type) {
	case watcher.ChangedMsg:
		t, err := theme.LoadThemeFromYAML(msg.Path)
		if err != nil {
			m.logger.Warn("failed to reload theme", "path", msg.Path, "err", err)
			m.statusbar.SetError(fmt.Sprintf("Theme error: %v", err))
			return m, true
		}
		applyTheme(t)
		m.logger.Info("theme reloaded", "path", msg.Path, "theme", t.Name)
		m.statusbar.SetMessage("Theme reloaded: " + t.Name)
		return m, true

	case watcher.ErrorMsg:
		m.logger.Warn("theme watcher error", "err", msg.Error)
		m.statusbar.SetError(fmt.Sprintf("Watch error: %v", msg.Error))
		return m, true
	}
	return m, false
}

// routeToActiveView routes messages to the currently active view
func (m Model) routeToActiveView(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.activeView {
	case domain.ViewStoryList:
		m.storylist, cmd = m.storylist.Update(msg)
	case domain.ViewStoryDetail:
		m.storydetail, cmd = m.storydetail.Update(msg)
	}

	return m, cmd
}
