package auditlogs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"codeberg.org/algopatterns/envelope/api/rest/pagination"
	"codeberg.org/algopatterns/envelope/internal/audit"
	apperrors "codeberg.org/algopatterns/envelope/internal/errors"
	"codeberg.org/algopatterns/envelope/internal/response"
)

const (
	sortColumnStartedAt = "started_at"
	maxPageSize         = 100
	msgAuditLogNotFound = "Audit log not found"
)

var listOptions = pagination.Options{
	MaxPageSize:  maxPageSize,
	SortColumns:  []string{sortColumnStartedAt},
	DefaultSort:  sortColumnStartedAt,
	DefaultOrder: response.SortDesc,
}

// lists audit records, newest first by default
func ListHandler(store audit.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := pagination.FromQuery(c, listOptions)
		if err != nil {
			response.Fail(c, err)
			return
		}

		query := audit.Query{
			Offset:    params.Offset(),
			Limit:     params.PageSize,
			UserID:    c.Query("userId"),
			Ascending: params.SortDirection == response.SortAsc,
		}

		if raw := c.Query("status"); raw != "" {
			status, ok := audit.ParseStatus(strings.ToUpper(raw))
			if !ok {
				response.Fail(c, apperrors.NewClient(http.StatusBadRequest, apperrors.MsgBadRequest400,
					apperrors.WithDescription("status must be one of PENDING, SUCCESS, FAILED")))
				return
			}

			query.Status = status
		}

		records, total, err := store.List(c.Request.Context(), query)
		if err != nil {
			response.Fail(c, err)
			return
		}

		items := make([]AuditLogResponse, 0, len(records))
		for _, r := range records {
			items = append(items, toResponse(r))
		}

		page := pagination.NewPagination(params, total)
		if current := audit.FromContext(c); current != nil {
			page.ExecutionID = current.ID.String()
		}

		response.Respond(c, items, response.OK(), page)
	}
}

// returns a single audit record by id
func GetHandler(store audit.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("id")
		if !apperrors.IsValidUUID(raw) {
			response.Fail(c, notFound())
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, notFound())
			return
		}

		record, err := store.Get(c.Request.Context(), id)
		if errors.Is(err, audit.ErrRecordNotFound) {
			response.Fail(c, notFound())
			return
		}

		if err != nil {
			response.Fail(c, err)
			return
		}

		response.Success(c, toResponse(record))
	}
}

func notFound() error {
	return apperrors.NewClient(http.StatusNotFound, msgAuditLogNotFound,
		apperrors.WithDescription(apperrors.MsgResourceNotFound))
}
