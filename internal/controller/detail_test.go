package controller

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/scifi-stories-go/internal/client"
	"github.com/robertguss/scifi-stories-go/internal/domain"
)

func TestDetailController_Mount(t *testing.T) {
	c := NewDetailController(nil)
	storyTk, allTk := c.Mount(context.Background(), "s1")

	assert.Equal(t, "s1", c.ID())
	assert.Equal(t, StateLoading, c.State())
	assert.Equal(t, domain.ModeWordExplorer, c.Mode())
	assert.Equal(t, domain.TabDetails, c.Tab())

	_, ready := c.Neighbors()
	assert.False(t, ready)

	assert.NoError(t, storyTk.Context().Err())
	assert.NoError(t, allTk.Context().Err())
}

func TestDetailController_ResolveInEitherOrder(t *testing.T) {
	stories := makeStories(3)

	t.Run("story first", func(t *testing.T) {
		c := NewDetailController(nil)
		storyTk, allTk := c.Mount(context.Background(), "s1")

		require.True(t, c.ResolveStory(storyTk, stories[1], nil))
		assert.Equal(t, StateLoaded, c.State())
		assert.Equal(t, "Story 1", c.Story().Title)
		_, ready := c.Neighbors()
		assert.False(t, ready, "neighbours wait for the collection")

		require.True(t, c.ResolveCollection(allTk, stories, nil))
		n, ready := c.Neighbors()
		assert.True(t, ready)
		require.NotNil(t, n.Previous)
		require.NotNil(t, n.Next)
		assert.Equal(t, "s0", n.Previous.ID)
		assert.Equal(t, "s2", n.Next.ID)
	})

	t.Run("collection first", func(t *testing.T) {
		c := NewDetailController(nil)
		storyTk, allTk := c.Mount(context.Background(), "s0")

		require.True(t, c.ResolveCollection(allTk, stories, nil))
		n, ready := c.Neighbors()
		assert.True(t, ready)
		assert.Nil(t, n.Previous)
		require.NotNil(t, n.Next)
		assert.Equal(t, "s1", n.Next.ID)
		assert.Equal(t, StateLoading, c.State())

		require.True(t, c.ResolveStory(storyTk, stories[0], nil))
		assert.Equal(t, StateLoaded, c.State())
	})
}

func TestDetailController_StoryErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		c := NewDetailController(nil)
		storyTk, _ := c.Mount(context.Background(), "nope")

		c.ResolveStory(storyTk, domain.Story{}, fmt.Errorf("%w: nope", client.ErrNotFound))
		assert.Equal(t, StateNotFound, c.State())
		assert.ErrorIs(t, c.Err(), client.ErrNotFound)
	})

	t.Run("network failure", func(t *testing.T) {
		c := NewDetailController(nil)
		storyTk, _ := c.Mount(context.Background(), "s1")

		c.ResolveStory(storyTk, domain.Story{}, fmt.Errorf("%w: timeout", client.ErrNetwork))
		assert.Equal(t, StateFailed, c.State())
		assert.ErrorIs(t, c.Err(), client.ErrNetwork)
	})

	t.Run("collection failure only drops neighbours", func(t *testing.T) {
		c := NewDetailController(nil)
		storyTk, allTk := c.Mount(context.Background(), "s1")

		require.True(t, c.ResolveCollection(allTk, nil, client.ErrNetwork))
		n, ready := c.Neighbors()
		assert.True(t, ready)
		assert.Nil(t, n.Previous)
		assert.Nil(t, n.Next)

		require.True(t, c.ResolveStory(storyTk, makeStories(2)[1], nil))
		assert.Equal(t, StateLoaded, c.State())
	})

	t.Run("id absent from collection has no neighbours", func(t *testing.T) {
		c := NewDetailController(nil)
		_, allTk := c.Mount(context.Background(), "elsewhere")

		c.ResolveCollection(allTk, makeStories(3), nil)
		n, ready := c.Neighbors()
		assert.True(t, ready)
		assert.Nil(t, n.Previous)
		assert.Nil(t, n.Next)
	})
}

func TestDetailController_Navigate(t *testing.T) {
	stories := makeStories(4)

	t.Run("recomputes neighbours from held collection", func(t *testing.T) {
		c := NewDetailController(nil)
		storyTk, allTk := c.Mount(context.Background(), "s1")
		c.ResolveCollection(allTk, stories, nil)
		c.ResolveStory(storyTk, stories[1], nil)
		c.SelectMode(domain.ModeStoryAdventure)

		next := c.Navigate(context.Background(), "s2")
		assert.Equal(t, "s2", c.ID())
		assert.Equal(t, StateLoading, c.State())
		assert.Equal(t, domain.ModeStoryAdventure, c.Mode(), "mode survives navigation")

		n, ready := c.Neighbors()
		assert.True(t, ready)
		assert.Equal(t, "s1", n.Previous.ID)
		assert.Equal(t, "s3", n.Next.ID)

		assert.ErrorIs(t, storyTk.Context().Err(), context.Canceled)
		require.True(t, c.ResolveStory(next, stories[2], nil))
		assert.Equal(t, "Story 2", c.Story().Title)
	})

	t.Run("superseded story result is dropped", func(t *testing.T) {
		c := NewDetailController(nil)
		first, _ := c.Mount(context.Background(), "s1")
		second := c.Navigate(context.Background(), "s2")

		assert.False(t, c.ResolveStory(first, stories[1], nil))
		assert.Equal(t, StateLoading, c.State())

		assert.True(t, c.ResolveStory(second, stories[2], nil))
		assert.Equal(t, "s2", c.Story().ID)

		assert.False(t, c.ResolveStory(first, stories[1], nil))
		assert.Equal(t, "s2", c.Story().ID)
	})

	t.Run("navigate while collection pending", func(t *testing.T) {
		c := NewDetailController(nil)
		_, allTk := c.Mount(context.Background(), "s0")
		c.Navigate(context.Background(), "s3")

		_, ready := c.Neighbors()
		assert.False(t, ready)

		c.ResolveCollection(allTk, stories, nil)
		n, ready := c.Neighbors()
		assert.True(t, ready)
		assert.Equal(t, "s2", n.Previous.ID)
		assert.Nil(t, n.Next)
	})
}

func TestDetailController_Remount(t *testing.T) {
	c := NewDetailController(nil)
	oldStory, oldAll := c.Mount(context.Background(), "s1")
	c.SelectMode(domain.ModeBrainQuest)

	newStory, newAll := c.Mount(context.Background(), "s2")
	assert.Equal(t, domain.ModeWordExplorer, c.Mode())

	assert.False(t, c.ResolveCollection(oldAll, makeStories(3), nil))
	assert.False(t, c.ResolveStory(oldStory, makeStories(3)[1], nil))
	_, ready := c.Neighbors()
	assert.False(t, ready)

	assert.True(t, c.ResolveCollection(newAll, makeStories(3), nil))
	assert.True(t, c.ResolveStory(newStory, makeStories(3)[2], nil))
}

func TestDetailController_Unmount(t *testing.T) {
	c := NewDetailController(nil)
	storyTk, allTk := c.Mount(context.Background(), "s1")
	c.Unmount()

	assert.ErrorIs(t, storyTk.Context().Err(), context.Canceled)
	assert.ErrorIs(t, allTk.Context().Err(), context.Canceled)
	assert.False(t, c.ResolveStory(storyTk, makeStories(2)[1], nil))
	assert.False(t, c.ResolveCollection(allTk, makeStories(2), nil))
	assert.Equal(t, StateIdle, c.State())
}

func TestDetailController_ModesAndTabs(t *testing.T) {
	c := NewDetailController(nil)

	assert.True(t, c.SelectMode(domain.ModeBrainQuest))
	assert.Equal(t, domain.ModeBrainQuest, c.Mode())
	assert.False(t, c.SelectMode(domain.ModeBrainQuest), "reselecting is a no-op")
	assert.False(t, c.SelectMode(domain.DetailMode(9)))
	assert.Equal(t, domain.ModeBrainQuest, c.Mode())

	assert.Equal(t, domain.TabImage, c.NextTab())
	assert.Equal(t, domain.TabAuthor, c.NextTab())
	assert.Equal(t, domain.TabDetails, c.NextTab())

	c.SelectTab(domain.TabAuthor)
	assert.Equal(t, domain.TabAuthor, c.Tab())
	c.SelectTab(domain.DetailTab(42))
	assert.Equal(t, domain.TabAuthor, c.Tab())
}
