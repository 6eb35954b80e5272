package pagination

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "codeberg.org/algopatterns/envelope/internal/errors"
	"codeberg.org/algopatterns/envelope/internal/response"
)

// query parameter names
const (
	QueryPageIndex     = "pageIndex"
	QueryPageSize      = "pageSize"
	QuerySortColumn    = "sortColumn"
	QuerySortDirection = "sortDirection"
	QueryNextToken     = "nextToken"
)

// tokens are opaque to clients: "p" followed by the page index
const tokenPrefix = "p"

// Options constrain what a listing endpoint accepts.
type Options struct {
	MaxPageSize  int
	SortColumns  []string
	DefaultSort  string
	DefaultOrder response.SortDirection
}

// FromQuery parses and validates pagination query parameters.
// A nextToken, when present, takes precedence over pageIndex.
// Malformed values produce a 400 client error.
func FromQuery(c *gin.Context, opts Options) (Params, error) {
	pageIndex, err := intParam(c, QueryPageIndex)
	if err != nil {
		return Params{}, err
	}

	if token := c.Query(QueryNextToken); token != "" {
		pageIndex, err = parseToken(token)
		if err != nil {
			return Params{}, err
		}
	}

	pageSize, err := intParam(c, QueryPageSize)
	if err != nil {
		return Params{}, err
	}

	column := c.DefaultQuery(QuerySortColumn, opts.DefaultSort)
	if !allowed(column, opts.SortColumns) {
		return Params{}, badRequest(fmt.Sprintf("%s must be one of: %s", QuerySortColumn, strings.Join(opts.SortColumns, ", ")))
	}

	direction := opts.DefaultOrder
	if raw := c.Query(QuerySortDirection); raw != "" {
		switch response.SortDirection(strings.ToLower(raw)) {
		case response.SortAsc:
			direction = response.SortAsc
		case response.SortDesc:
			direction = response.SortDesc
		default:
			return Params{}, badRequest(QuerySortDirection + " must be asc or desc")
		}
	}

	params := DefaultParams(pageIndex, pageSize, opts.MaxPageSize, column, direction)

	// the offset of the page after this one must fit in an int
	if params.PageIndex > math.MaxInt/params.PageSize {
		return Params{}, badRequest(QueryPageIndex + " is out of range")
	}

	return params, nil
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, badRequest(name + " must be a positive integer")
	}

	return n, nil
}

func formatToken(pageIndex int) string {
	return tokenPrefix + strconv.Itoa(pageIndex)
}

func parseToken(token string) (int, error) {
	if !strings.HasPrefix(token, tokenPrefix) {
		return 0, badRequest("invalid " + QueryNextToken)
	}

	n, err := strconv.Atoi(strings.TrimPrefix(token, tokenPrefix))
	if err != nil || n < 1 {
		return 0, badRequest("invalid " + QueryNextToken)
	}

	return n, nil
}

func allowed(column string, columns []string) bool {
	if len(columns) == 0 {
		return true
	}

	for _, c := range columns {
		if c == column {
			return true
		}
	}

	return false
}

func badRequest(description string) error {
	return apperrors.NewClient(http.StatusBadRequest, apperrors.MsgBadRequest400,
		apperrors.WithDescription(description))
}
