package view

import (
	"errors"
	"strings"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

// ErrUnsortableColumn is returned by SetSort for columns without an ordering.
var ErrUnsortableColumn = errors.New("column is not sortable")

// Column names a product table column.
type Column string

const (
	ColumnTitle Column = "title"
	ColumnPrice Column = "price"
)

// Sortable reports whether the table can be ordered by c.
func (c Column) Sortable() bool {
	return c == ColumnTitle || c == ColumnPrice
}

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Sort is the active ordering. The zero value means unsorted.
type Sort struct {
	Column    Column
	Direction Direction
}

// Active reports whether a sort column is set.
func (s Sort) Active() bool { return s.Column != "" }

// compare orders two products by the sort column. Titles compare
// lowercased; prices compare numerically.
func (s Sort) compare(a, b catalog.Product) int {
	var c int
	switch s.Column {
	case ColumnTitle:
		c = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case ColumnPrice:
		c = a.Price.Cmp(b.Price)
	}
	if s.Direction == Descending {
		return -c
	}
	return c
}
