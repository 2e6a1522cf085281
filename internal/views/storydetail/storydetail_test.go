package storydetail

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/scifi-stories-go/internal/client"
	"github.com/robertguss/scifi-stories-go/internal/controller"
	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/imageurl"
	"github.com/robertguss/scifi-stories-go/internal/messages"
)

var testStories = []domain.Story{
	{ID: "a", Title: "Alpha Centauri", Description: "First light", Status: domain.StatusNew},
	{
		ID:          "b",
		Title:       "Beta Pictoris",
		Description: "A dusty disc",
		Status:      domain.StatusPublished,
		Image:       domain.StringImage("covers/beta.png"),
		Adventure:   &domain.Adventure{Title: "Dust Runner"},
		Author:      &domain.Author{Name: "Vera Lin", Bio: "Writes about dust.", Publications: domain.NumberOf(3), Rating: domain.NumberOf(4)},
	},
	{ID: "c", Title: "Gamma Draconis", Status: domain.StatusInProgress},
}

func newModel(t *testing.T) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	m := New(context.Background(), client.Repository(nil), controller.NewDetailController(nil))
	m.SetSize(100, 40)
	return m
}

// opened mounts the page for id and resolves both fetches
func opened(t *testing.T, id string) Model {
	t.Helper()
	m := newModel(t)
	m.Open(id)

	var story domain.Story
	for _, s := range testStories {
		if s.ID == id {
			story = s
		}
	}
	m, _ = m.Update(messages.StoryLoadedMsg{Ticket: controller.Ticket{Gen: 1}, Story: story})
	m, _ = m.Update(messages.NeighborsLoadedMsg{Ticket: controller.Ticket{Gen: 1}, Stories: testStories})
	require.Equal(t, controller.StateLoaded, m.Controller().State())
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTiles(t *testing.T) {
	t.Run("story image and title lead", func(t *testing.T) {
		tiles := Tiles(testStories[1])
		require.Len(t, tiles, 8)
		assert.Equal(t, "Beta Pictoris", tiles[0].Title)
		assert.Equal(t, imageurl.Resolve(testStories[1].Image.Value(), ""), tiles[0].Image)
		assert.Equal(t, "Galaxy View", tiles[1].Title)
		assert.Equal(t, "Nebula", tiles[2].Title)
		assert.Equal(t, "Space Ship", tiles[3].Title)
		assert.Equal(t, tiles[:4], tiles[4:])
	})

	t.Run("fallbacks", func(t *testing.T) {
		tiles := Tiles(domain.Story{ID: "x"})
		assert.Equal(t, storyTileFallbackTitle, tiles[0].Title)
		assert.Equal(t, storyTileFallbackImage, tiles[0].Image)
	})
}

func TestModel_Loading(t *testing.T) {
	m := newModel(t)
	cmd := m.Open("a")
	require.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "Loading story...")
	assert.Contains(t, view, "‹ Previous", "navigation is shown while pending")
}

func TestModel_WordExplorerIsDefault(t *testing.T) {
	m := opened(t, "b")

	assert.Equal(t, domain.ModeWordExplorer, m.Controller().Mode())
	view := m.View()
	assert.Contains(t, view, "Word Explorer")
	assert.Contains(t, view, "Galaxy View")
	assert.Contains(t, view, "Beta Pictoris")
}

func TestModel_StoryAdventureTabs(t *testing.T) {
	m := opened(t, "b")

	m, _ = m.Update(keyRunes("2"))
	require.Equal(t, domain.ModeStoryAdventure, m.Controller().Mode())

	view := m.View()
	assert.Contains(t, view, "Dust Runner")
	assert.Contains(t, view, "A dusty disc")
	assert.Contains(t, view, "COMPLETED")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.TabImage, m.Controller().Tab())
	assert.Contains(t, m.View(), "covers/beta.png")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.TabAuthor, m.Controller().Tab())
	view = m.View()
	assert.Contains(t, view, "Vera Lin")
	assert.Contains(t, view, "Publications: 3")
	assert.Contains(t, view, "★★★★☆ 4.0")
}

func TestModel_AuthorDefaults(t *testing.T) {
	m := opened(t, "a")
	m, _ = m.Update(keyRunes("2"))
	m.Controller().SelectTab(domain.TabAuthor)
	m, _ = m.Update(nil)

	view := m.View()
	assert.Contains(t, view, domain.DefaultAuthorName)
	assert.Contains(t, view, domain.DefaultAuthorBio)
	assert.Contains(t, view, "4.5")
}

func TestModel_TabIgnoredOutsideAdventure(t *testing.T) {
	m := opened(t, "a")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.TabDetails, m.Controller().Tab())
}

func TestModel_BrainQuest(t *testing.T) {
	m := opened(t, "a")
	m, _ = m.Update(keyRunes("3"))

	view := m.View()
	assert.Contains(t, view, "Test your knowledge about this story")
	assert.Contains(t, view, "Start Quiz")
}

func TestModel_Neighbors(t *testing.T) {
	t.Run("first story has no previous", func(t *testing.T) {
		m := opened(t, "a")
		n, ok := m.Controller().Neighbors()
		require.True(t, ok)
		assert.Nil(t, n.Previous)
		require.NotNil(t, n.Next)

		_, cmd := m.Update(keyRunes("p"))
		assert.Nil(t, cmd)
		assert.Contains(t, m.View(), "Next: Beta Pictoris")
	})

	t.Run("next keeps mode and refetches the story", func(t *testing.T) {
		m := opened(t, "a")
		m, _ = m.Update(keyRunes("3"))

		m, cmd := m.Update(keyRunes("n"))
		require.NotNil(t, cmd)
		assert.Equal(t, "b", m.Controller().ID())
		assert.Equal(t, controller.StateLoading, m.Controller().State())
		assert.Equal(t, domain.ModeBrainQuest, m.Controller().Mode())

		n, ok := m.Controller().Neighbors()
		require.True(t, ok)
		assert.Equal(t, "a", n.Previous.ID)
		assert.Equal(t, "c", n.Next.ID)
	})
}

func TestModel_NotFound(t *testing.T) {
	m := newModel(t)
	m.Open("zzz")
	m, _ = m.Update(messages.StoryLoadedMsg{
		Ticket: controller.Ticket{Gen: 1},
		Error:  fmt.Errorf("%w: zzz", client.ErrNotFound),
	})

	view := m.View()
	assert.Contains(t, view, "Story not found")
	assert.Contains(t, view, "Press [esc] to return to the story list")

	// Mode keys are ignored without a story
	m, _ = m.Update(keyRunes("2"))
	assert.Equal(t, domain.ModeWordExplorer, m.Controller().Mode())
}

func TestModel_Failed(t *testing.T) {
	m := newModel(t)
	m.Open("a")
	m, _ = m.Update(messages.StoryLoadedMsg{
		Ticket: controller.Ticket{Gen: 1},
		Error:  fmt.Errorf("%w: timeout", client.ErrNetwork),
	})

	assert.Contains(t, m.View(), "Failed to load story")
}

func TestModel_CollectionFailureDisablesNavigation(t *testing.T) {
	m := newModel(t)
	m.Open("b")
	m, _ = m.Update(messages.NeighborsLoadedMsg{
		Ticket: controller.Ticket{Gen: 1},
		Error:  fmt.Errorf("%w: refused", client.ErrNetwork),
	})

	n, ok := m.Controller().Neighbors()
	assert.True(t, ok)
	assert.Nil(t, n.Previous)
	assert.Nil(t, n.Next)

	_, cmd := m.Update(keyRunes("n"))
	assert.Nil(t, cmd)
}

func TestModel_Back(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, keyRunes("h"), {Type: tea.KeyBackspace}} {
		m := opened(t, "a")
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, k.String())
		assert.Equal(t, messages.NavigateBackMsg{}, cmd())
	}
}
