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

// LoadState is the fetch state of a page
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateLoaded
	StateFailed
	StateNotFound
)

// String returns the display name of the state
func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	case StateNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// ListController owns the story collection, filter and page of the list page
type ListController struct {
	tracker  Tracker
	logger   *slog.Logger
	pageSize int

	state    LoadState
	err      error
	stories  []domain.Story
	filter   collection.FilterState
	filtered []domain.Story
	page     int
}

// NewListController creates an idle controller. A non-positive pageSize
// means collection.DefaultPageSize.
func NewListController(pageSize int, logger *slog.Logger) *ListController {
	if pageSize <= 0 {
		pageSize = collection.DefaultPageSize
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &ListController{
		logger:   logger,
		pageSize: pageSize,
		filter:   collection.FilterState{Status: domain.FilterAll},
		page:     1,
	}
}

// Mount resets filter and page, supersedes any in-flight fetch and enters
// Loading. The caller runs FetchAll under the returned ticket's context.
func (c *ListController) Mount(ctx context.Context) Ticket {
	c.filter = collection.FilterState{Status: domain.FilterAll}
	c.page = 1
	c.stories = nil
	c.filtered = nil
	c.err = nil
	c.state = StateLoading
	return c.tracker.Next(ctx)
}

// Reload remounts the page. It is the only way out of StateFailed.
func (c *ListController) Reload(ctx context.Context) Ticket {
	return c.Mount(ctx)
}

// Resolve applies the result of the fetch issued with tk. Results for stale
// tickets are dropped and false is returned.
func (c *ListController) Resolve(tk Ticket, stories []domain.Story, err error) bool {
	if !c.tracker.Finish(tk) {
		c.logger.Debug("dropping stale story list", "gen", tk.Gen, "current", c.tracker.Gen())
		return false
	}

	switch {
	case err == nil:
		c.stories = stories
	case errors.Is(err, client.ErrFormat):
		c.logger.Warn("story list had unexpected format, treating as empty", "err", err)
		c.stories = nil
	default:
		c.logger.Error("failed to fetch stories", "kind", client.Kind(err), "err", err)
		c.err = err
		c.state = StateFailed
		return true
	}

	c.state = StateLoaded
	c.recompute()
	return true
}

// Unmount cancels any in-flight fetch; late results are dropped
func (c *ListController) Unmount() {
	c.tracker.Reset()
	c.state = StateIdle
}

// SetSearch sets the search term and returns to page 1
func (c *ListController) SetSearch(term string) {
	c.filter.Search = term
	c.page = 1
	c.recompute()
}

// SetStatus sets the status filter and returns to page 1
func (c *ListController) SetStatus(f domain.StatusFilter) {
	c.filter.Status = f
	c.page = 1
	c.recompute()
}

// CycleStatus advances to the next status filter
func (c *ListController) CycleStatus() domain.StatusFilter {
	c.SetStatus(c.filter.Status.Next())
	return c.filter.Status
}

// NextPage moves forward one page; it is a no-op on the last page
func (c *ListController) NextPage() bool {
	next := collection.ClampPage(c.page+1, c.totalPages())
	if next == c.page {
		return false
	}
	c.page = next
	return true
}

// PrevPage moves back one page; it is a no-op on page 1
func (c *ListController) PrevPage() bool {
	prev := collection.ClampPage(c.page-1, c.totalPages())
	if prev == c.page {
		return false
	}
	c.page = prev
	return true
}

// Page returns the current page window
func (c *ListController) Page() collection.Page {
	return collection.Paginate(c.filtered, collection.PageState{Size: c.pageSize, Current: c.page})
}

// Filtered returns the filtered collection
func (c *ListController) Filtered() []domain.Story {
	return c.filtered
}

// Stories returns the full collection in server order
func (c *ListController) Stories() []domain.Story {
	return c.stories
}

// Counts returns the number of stories per status filter
func (c *ListController) Counts() map[domain.StatusFilter]int {
	return collection.CountByStatus(c.stories)
}

// Filter returns the active filter
func (c *ListController) Filter() collection.FilterState {
	return c.filter
}

// PageSize returns the number of stories per page
func (c *ListController) PageSize() int {
	return c.pageSize
}

// State returns the fetch state
func (c *ListController) State() LoadState {
	return c.state
}

// Err returns the fetch error when State is StateFailed
func (c *ListController) Err() error {
	return c.err
}

func (c *ListController) totalPages() int {
	return collection.TotalPages(len(c.filtered), c.pageSize)
}

func (c *ListController) recompute() {
	c.filtered = collection.Filter(c.stories, c.filter)
	c.page = collection.ClampPage(c.page, c.totalPages())
}
