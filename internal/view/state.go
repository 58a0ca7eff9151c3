// Package view holds the view-state controller for the product table.
//
// A State owns the full product set as last fetched plus the user's inputs
// (keyword, sort, page, page size). Every mutator finishes with recompute,
// which derives the filtered and sorted set from those inputs alone, so the
// derived view can never drift from the state that produced it.
//
// State is not safe for concurrent use; callers serialize access.
package view

import (
	"errors"
	"slices"
	"strings"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

// DefaultPageSize matches the panel's initial page-size selector value.
const DefaultPageSize = 5

// ErrInvalidPageSize is returned by SetPageSize for sizes below one.
var ErrInvalidPageSize = errors.New("invalid page size")

// State is the view-state controller.
type State struct {
	full     []catalog.Product
	keyword  string
	sort     Sort
	page     int
	pageSize int

	filtered []catalog.Product
}

// New returns an empty State. Non-positive page sizes fall back to DefaultPageSize.
func New(pageSize int) *State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &State{page: 1, pageSize: pageSize}
}

// SetFullSet replaces the full product set wholesale and returns to page 1.
func (s *State) SetFullSet(products []catalog.Product) {
	s.full = slices.Clone(products)
	s.page = 1
	s.recompute()
}

// SetKeyword changes the title filter and returns to page 1.
func (s *State) SetKeyword(keyword string) {
	s.keyword = keyword
	s.page = 1
	s.recompute()
}

// SetSort sorts by column. Choosing the active column again flips the
// direction; any other column starts ascending. The page is kept.
func (s *State) SetSort(column Column) error {
	if !column.Sortable() {
		return ErrUnsortableColumn
	}
	if s.sort.Column == column {
		s.sort.Direction = s.sort.Direction.Flip()
	} else {
		s.sort = Sort{Column: column, Direction: Ascending}
	}
	s.recompute()
	return nil
}

// SetPageSize changes the page size and returns to page 1.
func (s *State) SetPageSize(n int) error {
	if n < 1 {
		return ErrInvalidPageSize
	}
	s.pageSize = n
	s.page = 1
	s.recompute()
	return nil
}

// GoToPage moves to page n and reports whether it did. Pages outside
// [1, PageCount()] leave the state untouched.
func (s *State) GoToPage(n int) bool {
	if n < 1 || n > s.PageCount() {
		return false
	}
	s.page = n
	return true
}

// PageCount is ceil(len(filtered) / pageSize); zero when nothing matches.
func (s *State) PageCount() int {
	return (len(s.filtered) + s.pageSize - 1) / s.pageSize
}

// CurrentPageSlice returns the products on the current page.
func (s *State) CurrentPageSlice() []catalog.Product {
	start := (s.page - 1) * s.pageSize
	if start >= len(s.filtered) {
		return []catalog.Product{}
	}
	end := min(start+s.pageSize, len(s.filtered))
	return slices.Clone(s.filtered[start:end])
}

// Filtered returns the filtered and sorted set across all pages.
func (s *State) Filtered() []catalog.Product { return slices.Clone(s.filtered) }

// Full returns the full set in fetch order.
func (s *State) Full() []catalog.Product { return slices.Clone(s.full) }

func (s *State) Keyword() string { return s.keyword }
func (s *State) Sort() Sort { return s.sort }
func (s *State) Page() int { return s.page }
func (s *State) PageSize() int { return s.pageSize }

// Find looks a product up by id in the full set.
func (s *State) Find(id int) (catalog.Product, bool) {
	i := slices.IndexFunc(s.full, func(p catalog.Product) bool { return p.ID == id })
	if i < 0 {
		return catalog.Product{}, false
	}
	return s.full[i], true
}

// recompute derives the filtered set from the full set, keyword and sort.
func (s *State) recompute() {
	s.filtered = filterByTitle(s.full, s.keyword)
	if s.sort.Column != "" {
		slices.SortStableFunc(s.filtered, s.sort.compare)
	}
}

// filterByTitle keeps products whose lowercased title contains the lowercased keyword.
func filterByTitle(products []catalog.Product, keyword string) []catalog.Product {
	if keyword == "" {
		return slices.Clone(products)
	}
	needle := strings.ToLower(keyword)
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}
