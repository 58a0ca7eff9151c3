package view

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

func product(id int, title string, price int64) catalog.Product {
	return catalog.Product{ID: id, Title: title, Price: decimal.NewFromInt(price)}
}

func ids(products []catalog.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func sequential(n int) []catalog.Product {
	out := make([]catalog.Product, n)
	for i := range out {
		out[i] = product(i+1, "Item", int64(i+1))
	}
	return out
}

func TestState_Pagination(t *testing.T) {
	s := New(5)
	s.SetFullSet(sequential(7))

	if got := s.PageCount(); got != 2 {
		t.Fatalf("PageCount() = %d, want 2", got)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, ids(s.CurrentPageSlice())); diff != "" {
		t.Errorf("page 1 mismatch (-want +got):\n%s", diff)
	}

	if !s.GoToPage(2) {
		t.Fatal("GoToPage(2) = false, want true")
	}
	if diff := cmp.Diff([]int{6, 7}, ids(s.CurrentPageSlice())); diff != "" {
		t.Errorf("page 2 mismatch (-want +got):\n%s", diff)
	}
}

func TestState_GoToPageOutOfRange(t *testing.T) {
	s := New(5)
	s.SetFullSet(sequential(7))
	s.GoToPage(2)
	before := ids(s.CurrentPageSlice())

	for _, n := range []int{-1, 0, 3, 100} {
		if s.GoToPage(n) {
			t.Errorf("GoToPage(%d) = true, want false", n)
		}
		if s.Page() != 2 {
			t.Errorf("after GoToPage(%d) Page() = %d, want 2", n, s.Page())
		}
		if diff := cmp.Diff(before, ids(s.CurrentPageSlice())); diff != "" {
			t.Errorf("after GoToPage(%d) slice changed (-want +got):\n%s", n, diff)
		}
	}
}

func TestState_GoToPageEmpty(t *testing.T) {
	s := New(5)
	s.SetFullSet(nil)

	if s.PageCount() != 0 {
		t.Errorf("PageCount() = %d, want 0", s.PageCount())
	}
	if s.GoToPage(1) {
		t.Error("GoToPage(1) on empty set = true, want false")
	}
	if got := s.CurrentPageSlice(); len(got) != 0 {
		t.Errorf("CurrentPageSlice() = %v, want empty", got)
	}
}

func TestState_Keyword(t *testing.T) {
	s := New(5)
	s.SetFullSet([]catalog.Product{
		product(1, "Phone X", 10),
		product(2, "Chair", 20),
		product(3, "Smartphone 9", 30),
	})

	s.SetKeyword("phone")
	if diff := cmp.Diff([]int{1, 3}, ids(s.Filtered())); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}

	s.SetKeyword("PHONE")
	if len(s.Filtered()) != 2 {
		t.Errorf("case-insensitive filter len = %d, want 2", len(s.Filtered()))
	}

	s.SetKeyword("")
	if diff := cmp.Diff([]int{1, 2, 3}, ids(s.Filtered())); diff != "" {
		t.Errorf("empty keyword should restore full set in order (-want +got):\n%s", diff)
	}
}

func TestState_KeywordProperty(t *testing.T) {
	full := []catalog.Product{
		product(1, "Classic Red Shirt", 1),
		product(2, "Sleek Wireless Mouse", 2),
		product(3, "RED sneakers", 3),
		product(4, "Bluetooth Speaker", 4),
		product(5, "", 5),
	}
	s := New(2)
	s.SetFullSet(full)

	for _, k := range []string{"", "red", "Re", "e", "s", "zzz", " "} {
		s.SetKeyword(k)
		var want []int
		for _, p := range full {
			if strings.Contains(strings.ToLower(p.Title), strings.ToLower(k)) {
				want = append(want, p.ID)
			}
		}
		got := ids(s.Filtered())
		if len(want) == 0 {
			want = []int{}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("keyword %q mismatch (-want +got):\n%s", k, diff)
		}
	}
}

func TestState_SortPrice(t *testing.T) {
	s := New(5)
	s.SetFullSet([]catalog.Product{
		product(1, "a", 30),
		product(2, "b", 10),
		product(3, "c", 20),
	})

	if err := s.SetSort(ColumnPrice); err != nil {
		t.Fatalf("SetSort() error = %v", err)
	}
	if diff := cmp.Diff([]int{2, 3, 1}, ids(s.Filtered())); diff != "" {
		t.Errorf("ascending mismatch (-want +got):\n%s", diff)
	}

	s.SetSort(ColumnPrice)
	if s.Sort().Direction != Descending {
		t.Errorf("Direction = %q, want %q", s.Sort().Direction, Descending)
	}
	if diff := cmp.Diff([]int{1, 3, 2}, ids(s.Filtered())); diff != "" {
		t.Errorf("descending mismatch (-want +got):\n%s", diff)
	}
}

func TestState_SortPriceDecimal(t *testing.T) {
	s := New(5)
	s.SetFullSet([]catalog.Product{
		{ID: 1, Price: decimal.RequireFromString("9.5")},
		{ID: 2, Price: decimal.RequireFromString("10")},
		{ID: 3, Price: decimal.RequireFromString("9.25")},
	})
	s.SetSort(ColumnPrice)

	// Numeric, not lexical: "10" sorts after "9.5".
	if diff := cmp.Diff([]int{3, 1, 2}, ids(s.Filtered())); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestState_SortTitleCaseInsensitiveStable(t *testing.T) {
	s := New(10)
	s.SetFullSet([]catalog.Product{
		product(1, "banana", 1),
		product(2, "Apple", 2),
		product(3, "apple", 3),
		product(4, "Cherry", 4),
	})

	s.SetSort(ColumnTitle)
	if diff := cmp.Diff([]int{2, 3, 1, 4}, ids(s.Filtered())); diff != "" {
		t.Errorf("ascending mismatch (-want +got):\n%s", diff)
	}

	s.SetSort(ColumnTitle)
	// Ties keep their input order in both directions.
	if diff := cmp.Diff([]int{4, 1, 2, 3}, ids(s.Filtered())); diff != "" {
		t.Errorf("descending mismatch (-want +got):\n%s", diff)
	}
}

func TestState_SortToggleAndSwitch(t *testing.T) {
	s := New(5)
	s.SetFullSet(sequential(3))

	s.SetSort(ColumnPrice)
	s.SetSort(ColumnPrice)
	if got := s.Sort(); got != (Sort{Column: ColumnPrice, Direction: Descending}) {
		t.Fatalf("Sort() = %+v, want price desc", got)
	}

	s.SetSort(ColumnTitle)
	if got := s.Sort(); got != (Sort{Column: ColumnTitle, Direction: Ascending}) {
		t.Errorf("Sort() = %+v, want title asc", got)
	}
}

func TestState_SortRejectsUnknownColumn(t *testing.T) {
	s := New(5)
	s.SetFullSet(sequential(3))
	s.SetSort(ColumnPrice)

	if err := s.SetSort("category"); err != ErrUnsortableColumn {
		t.Errorf("SetSort(category) error = %v, want %v", err, ErrUnsortableColumn)
	}
	if s.Sort().Column != ColumnPrice {
		t.Errorf("sort changed to %q", s.Sort().Column)
	}
}

func TestState_PageResets(t *testing.T) {
	s := New(2)
	s.SetFullSet(sequential(10))

	s.GoToPage(3)
	s.SetSort(ColumnPrice)
	if s.Page() != 3 {
		t.Errorf("SetSort changed page to %d, want 3", s.Page())
	}

	s.SetKeyword("item")
	if s.Page() != 1 {
		t.Errorf("SetKeyword left page at %d, want 1", s.Page())
	}

	s.GoToPage(4)
	if err := s.SetPageSize(3); err != nil {
		t.Fatalf("SetPageSize() error = %v", err)
	}
	if s.Page() != 1 {
		t.Errorf("SetPageSize left page at %d, want 1", s.Page())
	}

	s.GoToPage(2)
	s.SetFullSet(sequential(10))
	if s.Page() != 1 {
		t.Errorf("SetFullSet left page at %d, want 1", s.Page())
	}
}

func TestState_SetPageSizeInvalid(t *testing.T) {
	s := New(5)
	s.SetFullSet(sequential(12))
	s.GoToPage(2)

	if err := s.SetPageSize(0); err != ErrInvalidPageSize {
		t.Errorf("SetPageSize(0) error = %v, want %v", err, ErrInvalidPageSize)
	}
	if s.PageSize() != 5 || s.Page() != 2 {
		t.Errorf("state changed: size=%d page=%d", s.PageSize(), s.Page())
	}
}

func TestState_SetFullSetKeepsKeywordAndSort(t *testing.T) {
	s := New(5)
	s.SetFullSet([]catalog.Product{product(1, "Phone", 30), product(2, "Desk", 10)})
	s.SetKeyword("o")
	s.SetSort(ColumnPrice)

	s.SetFullSet([]catalog.Product{
		product(1, "Phone", 30),
		product(2, "Desk", 10),
		product(3, "Monitor", 5),
	})

	if diff := cmp.Diff([]int{3, 1}, ids(s.Filtered())); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestState_SliceBound(t *testing.T) {
	for size := 1; size <= 8; size++ {
		s := New(size)
		s.SetFullSet(sequential(7))
		for page := 1; page <= s.PageCount(); page++ {
			s.GoToPage(page)
			got := s.CurrentPageSlice()
			if len(got) == 0 || len(got) > size {
				t.Errorf("size=%d page=%d slice len = %d", size, page, len(got))
			}
		}
	}
}

func TestState_SliceIsCopy(t *testing.T) {
	s := New(5)
	s.SetFullSet(sequential(3))

	slice := s.CurrentPageSlice()
	slice[0].Title = "mutated"

	if p, _ := s.Find(1); p.Title != "Item" {
		t.Errorf("Find(1).Title = %q, caller mutation leaked into state", p.Title)
	}
}

func TestState_Find(t *testing.T) {
	s := New(5)
	s.SetFullSet(sequential(3))
	s.SetKeyword("nothing matches")

	// Find searches the full set, not the filtered one.
	if _, ok := s.Find(2); !ok {
		t.Error("Find(2) ok = false, want true")
	}
	if _, ok := s.Find(42); ok {
		t.Error("Find(42) ok = true, want false")
	}
}
