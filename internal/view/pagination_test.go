package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestState_Window(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		pageSize  int
		page      int
		wantPages []int
		wantPrev  bool
		wantNext  bool
	}{
		{"empty", 0, 5, 1, nil, false, false},
		{"single page", 3, 5, 1, []int{1}, false, false},
		{"first of many", 50, 5, 1, []int{1, 2, 3}, false, true},
		{"second of many", 50, 5, 2, []int{1, 2, 3, 4}, true, true},
		{"middle", 50, 5, 5, []int{3, 4, 5, 6, 7}, true, true},
		{"last", 50, 5, 10, []int{8, 9, 10}, true, false},
		{"next to last", 50, 5, 9, []int{7, 8, 9, 10}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.pageSize)
			s.SetFullSet(sequential(tt.items))
			s.GoToPage(tt.page)

			w := s.Window()
			if diff := cmp.Diff(tt.wantPages, w.Pages); diff != "" {
				t.Errorf("Pages mismatch (-want +got):\n%s", diff)
			}
			if w.HasPrev != tt.wantPrev {
				t.Errorf("HasPrev = %v, want %v", w.HasPrev, tt.wantPrev)
			}
			if w.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", w.HasNext, tt.wantNext)
			}
			if len(w.Pages) > 5 {
				t.Errorf("window has %d pages, want at most 5", len(w.Pages))
			}
		})
	}
}

func TestState_WindowRange(t *testing.T) {
	s := New(5)
	s.SetFullSet(sequential(7))
	s.GoToPage(2)

	w := s.Window()
	if w.RangeStart != 6 || w.RangeEnd != 7 || w.TotalItems != 7 {
		t.Errorf("range = %d-%d of %d, want 6-7 of 7", w.RangeStart, w.RangeEnd, w.TotalItems)
	}
	if w.Prev != 1 || w.Next != 3 {
		t.Errorf("Prev/Next = %d/%d, want 1/3", w.Prev, w.Next)
	}
}
