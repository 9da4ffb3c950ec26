package shared

import "strings"

// Sort directions accepted by list queries
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageRequest carries pagination and ordering for typed list queries
type PageRequest struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// Normalize fills defaults and clamps the page size to max
func (p PageRequest) Normalize(defaultSize, maxSize int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	p.OrderDir = strings.ToLower(p.OrderDir)
	if p.OrderDir != SortAsc && p.OrderDir != SortDesc {
		p.OrderDir = SortAsc
	}
	return p
}

// Offset returns the row offset for the page
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// PageLimits bounds the page size of list queries
type PageLimits struct {
	Default int
	Max     int
}

// DefaultPageLimits matches the storefront's list screens
var DefaultPageLimits = PageLimits{Default: 10, Max: 100}

// Apply normalizes p within the limits
func (l PageLimits) Apply(p PageRequest) PageRequest {
	return p.Normalize(l.Default, l.Max)
}
