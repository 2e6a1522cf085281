package controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robertguss/scifi-stories-go/internal/client"
	"github.com/robertguss/scifi-stories-go/internal/collection"
	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/logging"
)

// DetailController owns the story, neighbour and display state of the
// detail page. The story and the collection used for neighbours are fetched
// independently and may resolve in either order.
type DetailController struct {
	storyTracker      Tracker
	collectionTracker Tracker
	logger            *slog.Logger

	id    string
	state LoadState
	story domain.Story
	err   error

	stories           []domain.Story
	collectionPending bool
	neighbors         collection.Neighbors

	mode domain.DetailMode
	tab  domain.DetailTab
}

// NewDetailController creates an idle controller
func NewDetailController(logger *slog.Logger) *DetailController {
	if logger == nil {
		logger = logging.Discard()
	}
	return &DetailController{
		logger: logger,
		mode:   domain.ModeWordExplorer,
		tab:    domain.TabDetails,
	}
}

// Mount starts the page for id. The caller runs FetchOne(id) under the
// story ticket and FetchAll under the collection ticket, concurrently.
func (c *DetailController) Mount(ctx context.Context, id string) (story Ticket, all Ticket) {
	c.mode = domain.ModeWordExplorer
	c.tab = domain.TabDetails
	c.stories = nil
	c.collectionPending = true
	c.neighbors = collection.Neighbors{}

	story = c.Navigate(ctx, id)
	all = c.collectionTracker.Next(ctx)
	return story, all
}

// Navigate switches the page to another story id. The in-flight story fetch
// is superseded; neighbours are recomputed from the held collection. Display
// mode and tab are kept.
func (c *DetailController) Navigate(ctx context.Context, id string) Ticket {
	c.id = id
	c.state = StateLoading
	c.story = domain.Story{}
	c.err = nil
	c.recomputeNeighbors()
	return c.storyTracker.Next(ctx)
}

// ResolveStory applies the result of the story fetch issued with tk.
// Results for stale tickets are dropped and false is returned.
func (c *DetailController) ResolveStory(tk Ticket, story domain.Story, err error) bool {
	if !c.storyTracker.Finish(tk) {
		c.logger.Debug("dropping stale story", "gen", tk.Gen, "current", c.storyTracker.Gen())
		return false
	}

	switch {
	case err == nil:
		c.story = story
		c.state = StateLoaded
	case errors.Is(err, client.ErrNotFound):
		c.logger.Info("story not found", "story_id", c.id)
		c.err = err
		c.state = StateNotFound
	default:
		c.logger.Error("failed to fetch story", "story_id", c.id, "kind", client.Kind(err), "err", err)
		c.err = err
		c.state = StateFailed
	}
	return true
}

// ResolveCollection applies the result of the collection fetch issued with
// tk. A failed collection fetch only means there are no neighbours.
func (c *DetailController) ResolveCollection(tk Ticket, stories []domain.Story, err error) bool {
	if !c.collectionTracker.Finish(tk) {
		c.logger.Debug("dropping stale collection", "gen", tk.Gen, "current", c.collectionTracker.Gen())
		return false
	}

	c.collectionPending = false
	if err != nil {
		c.logger.Warn("failed to fetch stories for navigation", "kind", client.Kind(err), "err", err)
		c.stories = nil
	} else {
		c.stories = stories
	}
	c.recomputeNeighbors()
	return true
}

// Unmount cancels both fetches; late results are dropped
func (c *DetailController) Unmount() {
	c.storyTracker.Reset()
	c.collectionTracker.Reset()
	c.state = StateIdle
	c.stories = nil
	c.collectionPending = false
	c.neighbors = collection.Neighbors{}
}

// ID returns the story id the page is showing
func (c *DetailController) ID() string {
	return c.id
}

// State returns the story fetch state
func (c *DetailController) State() LoadState {
	return c.state
}

// Story returns the loaded story
func (c *DetailController) Story() domain.Story {
	return c.story
}

// Err returns the story fetch error
func (c *DetailController) Err() error {
	return c.err
}

// Neighbors returns the previous and next stories. The bool is false while
// the collection is still loading.
func (c *DetailController) Neighbors() (collection.Neighbors, bool) {
	return c.neighbors, !c.collectionPending
}

// SelectMode switches the display mode; unknown modes are ignored
func (c *DetailController) SelectMode(m domain.DetailMode) bool {
	if !m.Valid() || m == c.mode {
		return false
	}
	c.mode = m
	return true
}

// Mode returns the display mode
func (c *DetailController) Mode() domain.DetailMode {
	return c.mode
}

// SelectTab switches the Story Adventure tab
func (c *DetailController) SelectTab(t domain.DetailTab) {
	for _, known := range domain.AllTabs() {
		if known == t {
			c.tab = t
			return
		}
	}
}

// NextTab advances to the following tab, wrapping around
func (c *DetailController) NextTab() domain.DetailTab {
	tabs := domain.AllTabs()
	c.tab = tabs[(int(c.tab)+1)%len(tabs)]
	return c.tab
}

// Tab returns the selected tab
func (c *DetailController) Tab() domain.DetailTab {
	return c.tab
}

func (c *DetailController) recomputeNeighbors() {
	if c.collectionPending {
		c.neighbors = collection.Neighbors{}
		return
	}
	c.neighbors = collection.FindNeighbors(c.stories, c.id)
}
