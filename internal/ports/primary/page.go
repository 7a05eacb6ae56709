package primary

// Default page sizes.
const (
	DefaultJobPageSize       = 10
	DefaultCandidatePageSize = 20
	MaxPageSize              = 100
)

// PageRequest selects a page of a listing. Zero values take the defaults.
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize fills in defaults and clamps the page size.
func (p PageRequest) Normalize(defaultSize int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the number of rows before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Pagination describes where a page sits in the full listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes the pagination block for a page of total items.
func NewPagination(p PageRequest, total int) Pagination {
	pages := 0
	if p.PageSize > 0 {
		pages = (total + p.PageSize - 1) / p.PageSize
	}
	return Pagination{Page: p.Page, PageSize: p.PageSize, Total: total, TotalPages: pages}
}
