// Package catalog is the client for the remote product catalog REST API.
//
// The remote service is treated as an opaque CRUD store: it assigns product
// ids, owns every record, and is the only source of truth. Nothing in this
// package caches or retries.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PlaceholderThumbnail is shown when a product has no usable image URL.
const PlaceholderThumbnail = "https://via.placeholder.com/50"

// DefaultCreateImage is sent when a new product is created without an image.
const DefaultCreateImage = "https://placeimg.com/640/480/any"

// DefaultCategoryID is sent when a new product has no valid category id.
const DefaultCategoryID = 1

// Category is the optional category reference embedded in a product.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product mirrors the remote product record.
// Fields the panel never reads (slug, timestamps) are dropped on decode.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    *Category       `json:"category,omitempty"`
	Images      []string        `json:"images,omitempty"`
}

// CategoryName returns the category name or "" when the product has none.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// CategoryID returns the category id, falling back to DefaultCategoryID.
func (p Product) CategoryID() int {
	if p.Category == nil {
		return DefaultCategoryID
	}
	return p.Category.ID
}

// UpdateFields is the partial payload accepted by PUT {base}/{id}.
// Category and images are not part of the update path.
type UpdateFields struct {
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// CreateFields is the payload accepted by POST {base}/.
type CreateFields struct {
	Title       string   `json:"title"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	CategoryID  int      `json:"categoryId"`
	Images      []string `json:"images"`
}

// imageJunk is the set of characters stripped from stored image references.
// The remote service sometimes returns a list-encoded string such as
// `["https://a.png"` as a single array element.
const imageJunk = `[]"`

// CleanImageURL strips bracket and quote characters from a stored image reference.
func CleanImageURL(raw string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(imageJunk, r) {
			return -1
		}
		return r
	}, raw)
}

// FirstImage returns the cleaned first image reference, or "" if there is none.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return CleanImageURL(p.Images[0])
}

// Thumbnail returns a displayable image URL for the product.
// The cleaned first image is used only when it looks like an http(s) URL.
func (p Product) Thumbnail() string {
	if img := p.FirstImage(); strings.HasPrefix(img, "http") {
		return img
	}
	return PlaceholderThumbnail
}
