package storylist

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
	"github.com/robertguss/scifi-stories-go/internal/messages"
)

type stubRepo struct {
	stories []domain.Story
	err     error
}

func (r stubRepo) FetchAll(ctx context.Context) ([]domain.Story, error) {
	return r.stories, r.err
}

func (r stubRepo) FetchOne(ctx context.Context, id string) (domain.Story, error) {
	for _, s := range r.stories {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Story{}, client.ErrNotFound
}

func makeStories(n int) []domain.Story {
	stories := make([]domain.Story, n)
	for i := range stories {
		status := domain.StatusNew
		if i%2 == 1 {
			status = domain.StatusPublished
		}
		stories[i] = domain.Story{
			ID:          fmt.Sprintf("s%d", i),
			Title:       fmt.Sprintf("Story %d", i),
			Description: "A voyage",
			Status:      status,
		}
	}
	return stories
}

// loaded mounts the view and feeds it the fetch result synchronously
func loaded(t *testing.T, repo stubRepo, width int) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	m := New(context.Background(), repo, controller.NewListController(8, nil))
	m.SetSize(width, 60)
	m.Mount()

	stories, err := repo.FetchAll(context.Background())
	tk := controller.Ticket{Gen: 1}
	m, _ = m.Update(messages.StoriesLoadedMsg{Ticket: tk, Stories: stories, Error: err})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_MountShowsLoading(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m := New(context.Background(), stubRepo{}, controller.NewListController(8, nil))
	m.SetSize(80, 40)

	cmd := m.Mount()
	require.NotNil(t, cmd)
	assert.Equal(t, controller.StateLoading, m.Controller().State())
	assert.Contains(t, m.View(), "Loading stories...")
}

func TestModel_RendersFirstPage(t *testing.T) {
	m := loaded(t, stubRepo{stories: makeStories(10)}, 80)

	view := m.View()
	assert.Contains(t, view, "Story 0")
	assert.Contains(t, view, "Page 1 of 2")
	assert.Contains(t, view, "10 stories")
	assert.Contains(t, view, "All (10)")
	assert.Contains(t, view, "New (5)")
	assert.Contains(t, view, "Completed (5)")
}

func TestModel_Paging(t *testing.T) {
	m := loaded(t, stubRepo{stories: makeStories(10)}, 80)

	m, _ = m.Update(keyRunes("]"))
	assert.Equal(t, 2, m.Controller().Page().CurrentPage)
	assert.Len(t, m.Controller().Page().Items, 2)
	assert.Contains(t, m.View(), "Page 2 of 2")

	m, _ = m.Update(keyRunes("]"))
	assert.Equal(t, 2, m.Controller().Page().CurrentPage, "stays on the last page")

	m, _ = m.Update(keyRunes("["))
	assert.Equal(t, 1, m.Controller().Page().CurrentPage)
}

func TestModel_CursorMovement(t *testing.T) {
	t.Run("single column", func(t *testing.T) {
		m := loaded(t, stubRepo{stories: makeStories(3)}, 80)

		m, _ = m.Update(keyRunes("j"))
		m, _ = m.Update(keyRunes("j"))
		m, _ = m.Update(keyRunes("j"))
		s, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, "s2", s.ID)

		m, _ = m.Update(keyRunes("k"))
		s, _ = m.Current()
		assert.Equal(t, "s1", s.ID)
	})

	t.Run("two columns", func(t *testing.T) {
		m := loaded(t, stubRepo{stories: makeStories(6)}, 120)

		m, _ = m.Update(keyRunes("j"))
		s, _ := m.Current()
		assert.Equal(t, "s2", s.ID)

		m, _ = m.Update(keyRunes("l"))
		s, _ = m.Current()
		assert.Equal(t, "s3", s.ID)
	})
}

func TestModel_OpenNavigatesToDetail(t *testing.T) {
	m := loaded(t, stubRepo{stories: makeStories(3)}, 80)
	m, _ = m.Update(keyRunes("j"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.NavigateMsg{View: domain.ViewStoryDetail, StoryID: "s1"}, cmd())
}

func TestModel_Search(t *testing.T) {
	stories := makeStories(10)
	stories[4].Title = "Andromeda Rising"
	m := loaded(t, stubRepo{stories: stories}, 80)

	m, _ = m.Update(keyRunes("/"))
	require.True(t, m.Searching())

	for _, r := range "andro" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	assert.Equal(t, "andro", m.Controller().Filter().Search)
	assert.Equal(t, 1, m.Controller().Page().Total)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Searching())
	assert.Equal(t, "andro", m.Controller().Filter().Search, "blurring keeps the term")

	// Keys go back to the grid once the box is blurred
	m, _ = m.Update(keyRunes("f"))
	assert.Equal(t, domain.FilterNew, m.Controller().Filter().Status)
}

func TestModel_SearchWithoutMatches(t *testing.T) {
	m := loaded(t, stubRepo{stories: makeStories(4)}, 80)

	m, _ = m.Update(keyRunes("/"))
	for _, r := range "zzz" {
		m, _ = m.Update(keyRunes(string(r)))
	}

	view := m.View()
	assert.Contains(t, view, "No stories match the current filters")
	assert.Contains(t, view, "Page 1 of 1")
}

func TestModel_FilterMsg(t *testing.T) {
	m := loaded(t, stubRepo{stories: makeStories(10)}, 80)
	m, _ = m.Update(keyRunes("]"))

	m, _ = m.Update(messages.FilterMsg{Status: domain.FilterCompleted})
	assert.Equal(t, domain.FilterCompleted, m.Controller().Filter().Status)
	assert.Equal(t, 1, m.Controller().Page().CurrentPage)
	assert.Equal(t, 5, m.Controller().Page().Total)
}

func TestModel_FetchFailure(t *testing.T) {
	m := loaded(t, stubRepo{err: fmt.Errorf("%w: connection refused", client.ErrNetwork)}, 80)

	assert.Equal(t, controller.StateFailed, m.Controller().State())
	view := m.View()
	assert.Contains(t, view, "Failed to load stories")
	assert.Contains(t, view, "Press [r] to try again")

	// Grid keys are ignored in the failed state
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	_, cmd = m.Update(keyRunes("r"))
	assert.NotNil(t, cmd)
	assert.Equal(t, controller.StateLoading, m.Controller().State())
}

func TestModel_FormatErrorIsEmptyCollection(t *testing.T) {
	m := loaded(t, stubRepo{err: fmt.Errorf("%w: got object", client.ErrFormat)}, 80)

	assert.Equal(t, controller.StateLoaded, m.Controller().State())
	assert.Contains(t, m.View(), "No stories match the current filters")
}

func TestModel_StaleResultDropped(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m := New(context.Background(), stubRepo{}, controller.NewListController(8, nil))
	m.Mount()
	m.Mount()

	m, _ = m.Update(messages.StoriesLoadedMsg{Ticket: controller.Ticket{Gen: 1}, Stories: makeStories(3)})
	assert.Equal(t, controller.StateLoading, m.Controller().State())

	m, _ = m.Update(messages.StoriesLoadedMsg{Ticket: controller.Ticket{Gen: 2}, Stories: makeStories(3)})
	assert.Equal(t, controller.StateLoaded, m.Controller().State())
}
