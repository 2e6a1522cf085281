// Package collection derives the filtered, paginated and neighbour views of
// a story collection. Order is always the server-returned order.
package collection

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/robertguss/scifi-stories-go/internal/domain"
)

// DefaultPageSize is the number of stories per page
const DefaultPageSize = 8

// FilterState is the search term and status filter applied to a collection
type FilterState struct {
	Search string
	Status domain.StatusFilter
}

// IsZero reports whether the filter lets every story through
func (f FilterState) IsZero() bool {
	return f.Search == "" && (f.Status == "" || f.Status == domain.FilterAll)
}

// PageState selects a page of a filtered collection
type PageState struct {
	Size    int
	Current int
}

// Page is one window of a filtered collection
type Page struct {
	Items       []domain.Story
	TotalPages  int
	CurrentPage int
	Total       int
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a following page exists
func (p Page) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Neighbors are the stories adjacent to a given story
type Neighbors struct {
	Previous *domain.Story
	Next     *domain.Story
}

// Filter returns the stories whose title or description contains the search
// term (case-insensitive) and whose effective status matches the filter.
func Filter(stories []domain.Story, f FilterState) []domain.Story {
	if f.IsZero() {
		out := make([]domain.Story, len(stories))
		copy(out, stories)
		return out
	}

	folder := cases.Fold()
	term := folder.String(f.Search)

	out := make([]domain.Story, 0, len(stories))
	for _, s := range stories {
		if !f.Status.Matches(s) {
			continue
		}
		if term != "" &&
			!strings.Contains(folder.String(s.Title), term) &&
			!strings.Contains(folder.String(s.Description), term) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// TotalPages returns ceil(n/size). A non-positive size means DefaultPageSize.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (n + size - 1) / size
}

// ClampPage keeps page within [1, max(totalPages,1)]
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the window of filtered selected by ps. The current page is
// clamped, so an out-of-range page yields the nearest valid window.
func Paginate(filtered []domain.Story, ps PageState) Page {
	size := ps.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(filtered)
	totalPages := TotalPages(total, size)
	current := ClampPage(ps.Current, totalPages)

	start := (current - 1) * size
	end := min(start+size, total)

	var items []domain.Story
	if start < end {
		items = filtered[start:end]
	}

	return Page{
		Items:       items,
		TotalPages:  totalPages,
		CurrentPage: current,
		Total:       total,
	}
}

// FindNeighbors locates id in stories by linear scan and returns its
// positional neighbours. An absent id has no neighbours.
func FindNeighbors(stories []domain.Story, id string) Neighbors {
	for i := range stories {
		if stories[i].ID != id {
			continue
		}
		var n Neighbors
		if i > 0 {
			prev := stories[i-1]
			n.Previous = &prev
		}
		if i < len(stories)-1 {
			next := stories[i+1]
			n.Next = &next
		}
		return n
	}
	return Neighbors{}
}

// CountByStatus counts stories per status filter, FilterAll included
func CountByStatus(stories []domain.Story) map[domain.StatusFilter]int {
	counts := make(map[domain.StatusFilter]int, len(domain.AllFilters()))
	for _, f := range domain.AllFilters() {
		counts[f] = 0
	}
	for _, s := range stories {
		counts[domain.FilterAll]++
		switch s.EffectiveStatus() {
		case domain.StatusCompleted:
			counts[domain.FilterCompleted]++
		case domain.StatusInProgress:
			counts[domain.FilterInProgress]++
		default:
			counts[domain.FilterNew]++
		}
	}
	return counts
}
