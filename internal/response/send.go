package response

import (
	"net/http"
	"reflect"

	"codeberg.org/algopatterns/envelope/internal/audit"
	apperrors "codeberg.org/algopatterns/envelope/internal/errors"
	"codeberg.org/algopatterns/envelope/internal/logger"
)

const auditMessagePrefix = "Message Logged: "

// Send writes the envelope for a result and reports whether the audit stage
// should run. A nil pagination leaves the pagination block out; a zero
// status code is sent as 200.
//
// The continuation is ContinueToAudit exactly when the request carries an
// audit record, independent of whether the write succeeded.
func Send(req Request, w Writer, items any, status Status, pagination *Pagination) (Continuation, error) {
	if status.Code == 0 {
		status.Code = http.StatusOK
	}

	env := Build(items, status, pagination)

	w.SetStatusCode(status.Code)
	err := w.WriteJSON(env)

	if auditOf(req) != nil {
		return ContinueToAudit, err
	}

	return Stop, err
}

// HandleError logs err, annotates the audit record and writes an error
// envelope. NoResponse errors are logged and otherwise ignored: the response
// was already produced elsewhere.
func HandleError(req Request, w Writer, err error) (Continuation, error) {
	logger.Exception(err)

	if apperrors.IsNoResponse(err) {
		return Stop, nil
	}

	e := apperrors.From(err)
	if e == nil {
		e = apperrors.NewServer()
	}

	if record := auditOf(req); record != nil {
		logged := e.Message
		if logged == "" {
			logged = e.Description
		}

		record.AppendMessage(auditMessagePrefix + logged)
		record.AppendStack(e.Stack())
		record.MarkFailed()
	}

	return Send(req, w, nil, NewStatus(e.HTTPStatus(), e.Message, e.Description), nil)
}

// Build assembles the envelope without writing it.
func Build(items any, status Status, pagination *Pagination) Envelope {
	env := Envelope{
		Data:   normalizeData(items),
		Status: Classify(status),
	}

	if pagination != nil {
		env.Pagination = &PaginationBody{
			Total: pagination.Total,
			Sort: SortBody{
				Column:    pagination.SortColumn,
				Direction: pagination.SortDirection,
			},
			PageSize:    pagination.PageSize,
			PageIndex:   pagination.PageIndex,
			NextToken:   pagination.NextToken,
			ExecutionID: pagination.ExecutionID,
			HasMore:     pagination.HasMore,
		}
	}

	return env
}

func auditOf(req Request) *audit.Record {
	if req == nil {
		return nil
	}

	return req.Audit()
}

// data is never null: nil and typed-nil values become {}, nil slices become []
func normalizeData(v any) any {
	if v == nil {
		return map[string]any{}
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return reflect.MakeSlice(rv.Type(), 0, 0).Interface()
		}
	case reflect.Map, reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return map[string]any{}
		}
	}

	return v
}
