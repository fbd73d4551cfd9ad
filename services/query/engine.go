// Package query implements the catalog browsing model: one in-memory
// snapshot of the catalog combined with the viewer's search term, category
// filter, watched set, and page position.
package query

import (
	"errors"
	"strings"

	"hometheater/models"
)

// FilterWatched is the category-filter sentinel that selects watched
// titles instead of a genre. It is namespaced so no real genre can collide
// with it.
const FilterWatched = "watched"

// DefaultPageSize matches the poster grid of the browsing UI.
const DefaultPageSize = 30

// ErrNoWatchedStore indicates the engine was built without a watched set.
var ErrNoWatchedStore = errors.New("no watched store configured")

// LoadState tells the presentation layer which of the empty states it is
// looking at, so "no movies found" is never shown while a fetch is still
// outstanding.
type LoadState int

const (
	// StateUnloaded means no catalog snapshot has been applied yet.
	StateUnloaded LoadState = iota
	// StateEmptyCatalog means the catalog itself has no entries.
	StateEmptyCatalog
	// StateEmptyAfterFilter means entries exist but the current query
	// matches none of them.
	StateEmptyAfterFilter
	// StateReady means there is at least one visible entry.
	StateReady
)

// WatchedSet is the slice of the watched store the engine needs.
type WatchedSet interface {
	IsWatched(id string) bool
	Toggle(id string) (bool, error)
}

// Engine owns a catalog snapshot plus the query state and derives the
// visible page from them. It is not safe for concurrent use: a browsing
// session drives it from a single goroutine.
type Engine struct {
	snapshot   []models.CatalogEntry
	loaded     bool
	appliedSeq uint64

	searchTerm string
	filter     string
	page       int
	pageSize   int

	watched WatchedSet

	filtered []models.CatalogEntry
	dirty    bool
}

// NewEngine creates an engine over the given watched set. pageSize values
// below 1 fall back to DefaultPageSize.
func NewEngine(watched WatchedSet, pageSize int) *Engine {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		watched:  watched,
		pageSize: pageSize,
		page:     1,
	}
}

// ApplySnapshot installs a fetched catalog and reports whether it was
// accepted. Fetches carry a monotonic sequence number; a response that is
// not newer than the one already applied is discarded, so a slow in-flight
// fetch can never overwrite fresher data. Search, filter, and page are left
// untouched.
func (e *Engine) ApplySnapshot(seq uint64, entries []models.CatalogEntry) bool {
	if e.loaded && seq <= e.appliedSeq {
		return false
	}
	e.snapshot = entries
	e.loaded = true
	e.appliedSeq = seq
	e.dirty = true
	return true
}

// SetSearchTerm installs a new search term and resets to the first page.
// Matching is a case-insensitive substring test against the display title.
func (e *Engine) SetSearchTerm(term string) {
	e.searchTerm = strings.ToLower(term)
	e.page = 1
	e.dirty = true
}

// SetCategoryFilter installs a category filter and resets to the first
// page. The empty string clears the filter, FilterWatched restricts to
// watched titles, and any other value is matched as a genre.
func (e *Engine) SetCategoryFilter(value string) {
	e.filter = value
	e.page = 1
	e.dirty = true
}

// SetPage moves the visible window to page n, clamped into
// [1, TotalPages]. It never touches the search term or filter, so paging
// through results cannot change which results exist.
func (e *Engine) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if total := e.TotalPages(); n > total {
		n = total
	}
	e.page = n
}

// Page returns the current 1-based page number.
func (e *Engine) Page() int { return e.page }

// PageSize returns the configured page size.
func (e *Engine) PageSize() int { return e.pageSize }

// SearchTerm returns the active lowercased search term.
func (e *Engine) SearchTerm() string { return e.searchTerm }

// CategoryFilter returns the active category filter.
func (e *Engine) CategoryFilter() string { return e.filter }

// ToggleWatched flips the watched mark for id through the underlying store
// and returns the new state. The filtered view changes whenever the
// watched filter is active, so callers re-render from Visible afterwards.
func (e *Engine) ToggleWatched(id string) (bool, error) {
	if e.watched == nil {
		return false, ErrNoWatchedStore
	}
	nowWatched, err := e.watched.Toggle(id)
	if err != nil {
		return false, err
	}
	e.dirty = true
	return nowWatched, nil
}

// Recompute returns the filtered catalog in snapshot order: the search
// predicate is applied first, then exactly one of no filter, watched
// membership, or genre membership. The result is cached until the
// snapshot, search term, filter, or watched set changes, so paging never
// re-filters.
func (e *Engine) Recompute() []models.CatalogEntry {
	if !e.dirty {
		return e.filtered
	}

	filtered := make([]models.CatalogEntry, 0, len(e.snapshot))
	for _, entry := range e.snapshot {
		if e.searchTerm != "" && !strings.Contains(strings.ToLower(entry.Title), e.searchTerm) {
			continue
		}
		switch e.filter {
		case "":
		case FilterWatched:
			if e.watched == nil || !e.watched.IsWatched(entry.ID) {
				continue
			}
		default:
			if !entry.HasGenre(e.filter) {
				continue
			}
		}
		filtered = append(filtered, entry)
	}

	e.filtered = filtered
	e.dirty = false
	return filtered
}

// TotalPages returns the page count for the current filtered set, floored
// at 1 so an empty result still renders as page 1 of 1.
func (e *Engine) TotalPages() int {
	total := (len(e.Recompute()) + e.pageSize - 1) / e.pageSize
	if total < 1 {
		total = 1
	}
	return total
}

// Visible returns the slice of the filtered set on the current page. A
// page beyond the filtered set yields an empty slice rather than a panic,
// which can happen when a fresh snapshot shrinks the catalog under the
// current page position.
func (e *Engine) Visible() []models.CatalogEntry {
	filtered := e.Recompute()

	start := (e.page - 1) * e.pageSize
	if start >= len(filtered) {
		return []models.CatalogEntry{}
	}
	end := start + e.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Status reports which state the view is in. The distinctions drive the
// three different placeholder messages of the UI.
func (e *Engine) Status() LoadState {
	switch {
	case !e.loaded:
		return StateUnloaded
	case len(e.snapshot) == 0:
		return StateEmptyCatalog
	case len(e.Recompute()) == 0:
		return StateEmptyAfterFilter
	default:
		return StateReady
	}
}
