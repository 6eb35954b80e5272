package pagination

import "codeberg.org/algopatterns/envelope/internal/response"

// Params holds pagination parameters from request
type Params struct {
	PageIndex     int
	PageSize      int
	SortColumn    string
	SortDirection response.SortDirection
}

// Offset returns the zero-based offset of the first item on the page
func (p Params) Offset() int {
	return (p.PageIndex - 1) * p.PageSize
}

// NewPagination creates the envelope pagination from params and total count
func NewPagination(params Params, total int) *response.Pagination {
	p := response.NewPagination(params.SortColumn)
	p.SortDirection = params.SortDirection
	p.Total = total
	p.PageSize = params.PageSize
	p.PageIndex = params.PageIndex

	hasMore := params.Offset()+params.PageSize < total
	p.WithHasMore(hasMore)

	if hasMore {
		p.NextToken = formatToken(params.PageIndex + 1)
	}

	return p
}

// DefaultParams returns pagination params with defaults applied
// maxPageSize: maximum allowed page size, <= 0 for no cap
func DefaultParams(pageIndex, pageSize, maxPageSize int, sortColumn string, direction response.SortDirection) Params {
	if pageIndex <= 0 {
		pageIndex = response.DefaultPageIndex
	}
	if pageSize <= 0 {
		pageSize = response.DefaultPageSize
	}
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if direction != response.SortDesc {
		direction = response.SortAsc
	}
	return Params{
		PageIndex:     pageIndex,
		PageSize:      pageSize,
		SortColumn:    sortColumn,
		SortDirection: direction,
	}
}
