package response

type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// NewPaginationMeta clamps page and perPage to at least 1.
func NewPaginationMeta(page, perPage, total int) PaginationMeta {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}
	return PaginationMeta{
		CurrentPage: page,
		PerPage:     perPage,
		TotalItems:  total,
		TotalPages:  pageCount(total, perPage),
	}
}

func pageCount(total, perPage int) int {
	if total <= 0 {
		return 0
	}
	return (total-1)/perPage + 1
}

// Bounds returns the slice bounds of the current page within TotalItems.
// Pages past the end give an empty range.
func (m PaginationMeta) Bounds() (int, int) {
	if m.TotalItems <= 0 || m.PerPage < 1 || m.CurrentPage < 1 {
		return 0, 0
	}
	// compare before multiplying, huge page numbers would overflow
	if m.CurrentPage-1 >= pageCount(m.TotalItems, m.PerPage) {
		return m.TotalItems, m.TotalItems
	}
	start := (m.CurrentPage - 1) * m.PerPage
	end := m.TotalItems
	if m.TotalItems-start > m.PerPage {
		end = start + m.PerPage
	}
	return start, end
}
