// Package pagination provides the page/limit request parameters and result
// metadata shared by every list operation.
package pagination

// Default and maximum page sizes for list operations.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are page-based pagination parameters.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps the parameters to sane bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized parameters.
func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// Meta describes one page of a list result.
type Meta struct {
	TotalItems   int64 `json:"total_items"`
	ItemCount    int   `json:"item_count"`
	ItemsPerPage int   `json:"items_per_page"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
}

// NewMeta builds result metadata from a total count and the page served.
func NewMeta(total int64, itemCount int, params Params) Meta {
	params = params.Normalize()
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit != 0 {
		totalPages++
	}
	return Meta{
		TotalItems:   total,
		ItemCount:    itemCount,
		ItemsPerPage: params.Limit,
		TotalPages:   totalPages,
		CurrentPage:  params.Page,
	}
}

// SortOrder is an asc/desc sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// OrderClause renders a SQL order clause for a column and direction,
// defaulting to descending.
func OrderClause(column string, order SortOrder) string {
	if order == SortAsc {
		return column + " ASC"
	}
	return column + " DESC"
}
