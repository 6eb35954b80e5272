package response

import (
	"net/http"

	"codeberg.org/algopatterns/envelope/internal/audit"
)

// StatusType is the coarse category clients branch on.
type StatusType string

const (
	TypeSuccess        StatusType = "SUCCESS"
	TypePartialSuccess StatusType = "PARTIAL_SUCCESS"
	TypeWarning        StatusType = "WARNING"
	TypeInfo           StatusType = "INFO"
	TypeError          StatusType = "ERROR"
)

// Status is the outcome a handler reports. Its type is never set directly;
// Classify derives it from Code.
type Status struct {
	Code        int
	Message     string
	Description string
}

// returns the default 200 status
func OK() Status {
	return Status{Code: http.StatusOK}
}

// builds a status from its parts; the type is derived later
func NewStatus(code int, message, description string) Status {
	return Status{Code: code, Message: message, Description: description}
}

// SortDirection orders a paginated listing.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	DefaultPageSize  = 10
	DefaultPageIndex = 1
	DefaultTotal     = 1
)

// Pagination describes the page carried alongside a listing.
// HasMore is tri-state: nil means unknown and is left out of the output.
type Pagination struct {
	SortColumn    string
	SortDirection SortDirection
	Total         int
	PageSize      int
	PageIndex     int
	HasMore       *bool
	NextToken     string
	ExecutionID   string
}

// returns a pagination with the documented defaults applied
func NewPagination(sortColumn string) *Pagination {
	return &Pagination{
		SortColumn:    sortColumn,
		SortDirection: SortAsc,
		Total:         DefaultTotal,
		PageSize:      DefaultPageSize,
		PageIndex:     DefaultPageIndex,
	}
}

// sets HasMore and returns the receiver for chaining
func (p *Pagination) WithHasMore(hasMore bool) *Pagination {
	p.HasMore = &hasMore
	return p
}

// Envelope is the uniform JSON body written for every response.
type Envelope struct {
	Data       any             `json:"data"`
	Pagination *PaginationBody `json:"pagination,omitempty"`
	Status     StatusBody      `json:"status"`
}

// StatusBody is the wire form of Status; Type is omitted for unmapped codes.
type StatusBody struct {
	Type        StatusType `json:"type,omitempty"`
	Message     string     `json:"message"`
	Description string     `json:"description,omitempty"`
}

// PaginationBody is the wire form of Pagination.
type PaginationBody struct {
	Total       int      `json:"total"`
	Sort        SortBody `json:"sort"`
	PageSize    int      `json:"pageSize"`
	PageIndex   int      `json:"pageIndex"`
	NextToken   string   `json:"nextToken,omitempty"`
	ExecutionID string   `json:"executionId,omitempty"`
	HasMore     *bool    `json:"hasMore,omitempty"`
}

// SortBody nests the sort column and direction under pagination.sort.
type SortBody struct {
	Column    string        `json:"column,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// Continuation tells the caller whether the audit stage should run next.
type Continuation int

const (
	Stop Continuation = iota
	ContinueToAudit
)

// Request is the inbound side the builder needs: the optional audit record.
type Request interface {
	Audit() *audit.Record
}

// Writer is the outbound transport.
type Writer interface {
	SetStatusCode(code int)
	WriteJSON(body any) error
}
