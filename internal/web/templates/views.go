// Package templates renders the admin panel's HTML with templ.
//
// The .templ files are the source; run `templ generate` after editing them.
package templates

import (
	"encoding/json"
	"strconv"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

// htmxConfig lets error responses swap like successful ones, so alert and
// modal fragments sent with 4xx/5xx statuses are shown.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// PageView is everything the full admin page needs.
type PageView struct {
	Table        TableView
	AuditEnabled bool
	Alert        *core.UserMessage // shown above the table, e.g. a failed first load
}

// TableView is the table partial: the current page plus its controls.
type TableView struct {
	Rows            []catalog.Product
	Keyword         string
	Sort            view.Sort
	Window          view.Window
	PageSize        int
	PageSizeOptions []int
}

// NewTableView snapshots st for rendering. Call it while holding the
// session lock.
func NewTableView(st *view.State, pageSizeOptions []int) TableView {
	return TableView{
		Rows:            st.CurrentPageSlice(),
		Keyword:         st.Keyword(),
		Sort:            st.Sort(),
		Window:          st.Window(),
		PageSize:        st.PageSize(),
		PageSizeOptions: pageSizeOptions,
	}
}

// ModalView describes the create/edit product dialog.
type ModalView struct {
	ProductID int // 0 for a new product
	Form      core.ProductForm
	Error     *core.UserMessage
	Invalid   func(field string) bool
}

// Editing reports whether the modal edits an existing product.
func (m ModalView) Editing() bool { return m.ProductID != 0 }

func (m ModalView) invalid(field string) bool {
	return m.Invalid != nil && m.Invalid(field)
}

func (m ModalView) idLabel() string {
	if m.Editing() {
		return strconv.Itoa(m.ProductID)
	}
	return "Auto-generated"
}

func productPath(id int) string {
	return "/products/" + strconv.Itoa(id)
}

func priceLabel(p catalog.Product) string {
	return "$" + p.Price.String()
}

func categoryLabel(p catalog.Product) string {
	if name := p.CategoryName(); name != "" {
		return name
	}
	return "N/A"
}

// sortLabel appends ▲ or ▼ to the label of the active sort column.
func sortLabel(current view.Sort, col view.Column, label string) string {
	if current.Column != col {
		return label
	}
	if current.Direction == view.Descending {
		return label + " ▼"
	}
	return label + " ▲"
}

func sortVals(col view.Column) string {
	b, _ := json.Marshal(map[string]string{"column": string(col)})
	return string(b)
}

func pageVals(page int) string {
	return `{"page":` + strconv.Itoa(page) + `}`
}

func fieldsJSON(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(b)
}
