package service

// DefaultPerPage is the page size used when the caller does not supply one.
const DefaultPerPage = 10

// Pagination is the envelope shared by all paginated endpoints.
type Pagination struct {
	CurrentPage int   `json:"current_page"` // Page that was returned
	LastPage    int   `json:"last_page"`    // Last page with content, at least 1
	PerPage     int   `json:"per_page"`     // Page size
	Total       int64 `json:"total"`        // Total matching rows
}

// normalizePage clamps page and perPage to sane values.
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// paginate builds the envelope for a page over total rows.
func paginate(page, perPage int, total int64) Pagination {
	lastPage := int(total+int64(perPage)-1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	return Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
}
