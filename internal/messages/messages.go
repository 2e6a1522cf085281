// Package messages defines the Bubble Tea messages exchanged between the
// root model, the views and background fetches.
package messages

import (
	"github.com/robertguss/scifi-stories-go/internal/controller"
	"github.com/robertguss/scifi-stories-go/internal/domain"
)

// Navigation messages
type NavigateMsg struct {
	View    domain.View
	StoryID string
}

type NavigateBackMsg struct{}

// Story messages

// StoriesLoadedMsg carries the result of a list page collection fetch
type StoriesLoadedMsg struct {
	Ticket  controller.Ticket
	Stories []domain.Story
	Error   error
}

// StoryLoadedMsg carries the result of a detail page story fetch
type StoryLoadedMsg struct {
	Ticket controller.Ticket
	Story  domain.Story
	Error  error
}

// NeighborsLoadedMsg carries the collection fetched for detail navigation
type NeighborsLoadedMsg struct {
	Ticket  controller.Ticket
	Stories []domain.Story
	Error   error
}

// ReloadMsg asks the list page to fetch the collection again
type ReloadMsg struct{}

// FilterMsg applies a status filter to the list page
type FilterMsg struct {
	Status domain.StatusFilter
}

// ThemeChangeMsg switches to a built-in theme
type ThemeChangeMsg struct {
	Name string
}

// Window size message
type WindowSizeMsg struct {
	Width  int
	Height int
}
