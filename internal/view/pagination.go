package view

// windowRadius is how many page links are shown on each side of the current page.
const windowRadius = 2

// Window is the pagination control for the current page: up to five page
// numbers centred on the current page, plus previous/next targets.
type Window struct {
	Pages      []int
	Current    int
	Prev       int
	Next       int
	HasPrev    bool
	HasNext    bool
	TotalPages int
	TotalItems int
	RangeStart int // 1-based index of the first item on the page, 0 if none
	RangeEnd   int
}

// Window builds the pagination control for the current state.
func (s *State) Window() Window {
	total := s.PageCount()
	w := Window{
		Current:    s.page,
		Prev:       s.page - 1,
		Next:       s.page + 1,
		HasPrev:    s.page > 1,
		HasNext:    s.page < total,
		TotalPages: total,
		TotalItems: len(s.filtered),
	}

	start := max(1, s.page-windowRadius)
	end := min(total, s.page+windowRadius)
	for i := start; i <= end; i++ {
		w.Pages = append(w.Pages, i)
	}

	if n := len(s.CurrentPageSlice()); n > 0 {
		w.RangeStart = (s.page-1)*s.pageSize + 1
		w.RangeEnd = w.RangeStart + n - 1
	}
	return w
}
