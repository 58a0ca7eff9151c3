package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func TestTable_EscapesAndFallsBack(t *testing.T) {
	st := view.New(5)
	st.SetFullSet([]catalog.Product{
		{ID: 1, Title: `<script>alert(1)</script>`, Price: decimal.RequireFromString("9.5"), Images: []string{"ftp://x"}},
		{ID: 2, Title: "Lamp", Price: decimal.NewFromInt(3), Category: &catalog.Category{Name: "Home"}, Images: []string{`["https://img.example.com/l.png"]`}},
	})

	out := renderString(t, Table(NewTableView(st, []int{5})))

	if strings.Contains(out, "<script>alert") {
		t.Error("title was not escaped")
	}
	for _, want := range []string{
		"&lt;script&gt;",
		"$9.5",
		"N/A",
		catalog.PlaceholderThumbnail,
		"https://img.example.com/l.png",
		"Home",
		`hx-get="/products/2"`,
		"Showing 1-2 of 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
}

func TestTable_Empty(t *testing.T) {
	out := renderString(t, Table(NewTableView(view.New(5), nil)))
	if !strings.Contains(out, "No products found") {
		t.Error("empty table should say so")
	}
}

func TestPage_SearchFiresOnInput(t *testing.T) {
	st := view.New(10)
	st.SetFullSet([]catalog.Product{{ID: 1, Title: "Lamp"}})

	out := renderString(t, Page(PageView{Table: NewTableView(st, []int{5, 10})}))

	if !strings.Contains(out, `hx-trigger="input changed, search"`) {
		t.Error("search input should trigger on every input change")
	}
	if strings.Contains(out, "delay:") {
		t.Error("search input should not debounce")
	}
	for _, want := range []string{`<option value="10" selected>10 / page</option>`, `id="catalog-table"`, "Lamp"} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(out, `href="/audit-log"`) {
		t.Error("audit link should be hidden when the audit log is off")
	}
}

func TestTable_SortIndicator(t *testing.T) {
	st := view.New(5)
	st.SetFullSet([]catalog.Product{{ID: 1, Title: "a"}})
	if err := st.SetSort(view.ColumnPrice); err != nil {
		t.Fatal(err)
	}
	if err := st.SetSort(view.ColumnPrice); err != nil {
		t.Fatal(err)
	}

	out := renderString(t, Table(NewTableView(st, nil)))
	if !strings.Contains(out, "Price ▼") {
		t.Error("descending price sort should show ▼")
	}
	if !strings.Contains(out, `hx-vals="{&#34;column&#34;:&#34;price&#34;}"`) {
		t.Error("price header should post its column")
	}
	if strings.Contains(out, "Title ▲") || strings.Contains(out, "Title ▼") {
		t.Error("unsorted column should have no indicator")
	}
}

func TestPagination_Window(t *testing.T) {
	out := renderString(t, Pagination(view.Window{
		Pages:      []int{3, 4, 5, 6, 7},
		Current:    5,
		Prev:       4,
		Next:       6,
		HasPrev:    true,
		HasNext:    true,
		TotalPages: 10,
		TotalItems: 50,
		RangeStart: 21,
		RangeEnd:   25,
	}))

	for _, want := range []string{
		`hx-vals="{&#34;page&#34;:4}"`,
		`hx-vals="{&#34;page&#34;:6}"`,
		`<li class="page-item active">`,
		"Showing 21-25 of 50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pagination missing %q", want)
		}
	}
	if strings.Contains(out, `&#34;page&#34;:2}`) {
		t.Error("page 2 is outside the window")
	}
}

func TestPagination_DisabledEdges(t *testing.T) {
	out := renderString(t, Pagination(view.Window{Pages: []int{1}, Current: 1, Prev: 0, Next: 2, TotalPages: 1}))
	if got := strings.Count(out, "page-item disabled"); got != 2 {
		t.Errorf("disabled items = %d, want 2", got)
	}
}

func TestErrorAlert_ShowsDetail(t *testing.T) {
	out := renderString(t, ErrorAlert(core.UserMessage{
		Message: "Rejected",
		Action:  "Fix it",
		Code:    "NET003",
		Detail:  `{"error":"<bad>"}`,
	}))

	for _, want := range []string{"Rejected", "Fix it", "NET003", "&lt;bad&gt;"} {
		if !strings.Contains(out, want) {
			t.Errorf("alert missing %q", want)
		}
	}
}

func TestProductModal_Modes(t *testing.T) {
	create := renderString(t, ProductModal(ModalView{}))
	if !strings.Contains(create, `hx-post="/products"`) || !strings.Contains(create, "btnCreate") {
		t.Error("create modal should post and show the create button")
	}

	edit := renderString(t, ProductModal(ModalView{
		ProductID: 7,
		Form:      core.ProductForm{Title: `Say "hi"`},
		Invalid:   func(f string) bool { return f == "price" },
	}))
	for _, want := range []string{`hx-put="/products/7"`, "btnSave", `value="Say &#34;hi&#34;"`, "is-invalid"} {
		if !strings.Contains(edit, want) {
			t.Errorf("edit modal missing %q", want)
		}
	}
}

func TestMutationDone_SwapsOutOfBand(t *testing.T) {
	out := renderString(t, MutationDone(TableView{}, SuccessAlert("saved")))
	for _, want := range []string{`id="catalog-table" hx-swap-oob="innerHTML"`, `id="alerts" hx-swap-oob="innerHTML"`, "saved"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
