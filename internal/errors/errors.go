package errors

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Return or pass one of NewClient, NewServer, NewNoResponse to response.Fail
//     (or c.Error + return, and let response.ErrorHandler pick it up)
//   - response.Fail logs, annotates the audit record and writes the envelope
//   - Never log the error yourself before handing it to response.Fail
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to classify and respond
//   - Do not log errors in non-handler code (avoid double logging)

// Error is the single shape shared by all three error kinds.
// Status, Message and Description are what reaches the client envelope;
// the cause and stack trace only reach logs and audit records.
type Error struct {
	Kind        Kind
	Status      int
	Message     string
	Description string

	cause error
	trace error
}

// sets the HTTP status
func WithStatus(status int) Option { return func(e *Error) { e.Status = status } }

// sets the client-facing message
func WithMessage(message string) Option { return func(e *Error) { e.Message = message } }

// sets the client-facing description
func WithDescription(description string) Option {
	return func(e *Error) { e.Description = description }
}

// sets the underlying cause returned by Unwrap
func WithCause(cause error) Option { return func(e *Error) { e.cause = cause } }

// signals that the response was already sent; handlers must emit nothing further
func NewNoResponse(opts ...Option) *Error {
	return newError(KindNoResponse, http.StatusInternalServerError, MsgInternalServerError500, MsgContactAdministrator, opts)
}

// returns an internal failure, 500 unless overridden
func NewServer(opts ...Option) *Error {
	return newError(KindServer, http.StatusInternalServerError, MsgInternalServerError500, MsgContactAdministrator, opts)
}

// returns a caller-fault error; status and message are required
func NewClient(status int, message string, opts ...Option) *Error {
	return newError(KindClient, status, message, "", opts)
}

func newError(kind Kind, status int, message, description string, opts []Option) *Error {
	e := &Error{
		Kind:        kind,
		Status:      status,
		Message:     message,
		Description: description,
	}

	for _, o := range opts {
		o(e)
	}

	if e.cause != nil {
		e.trace = pkgerrors.WithStack(e.cause)
	} else {
		e.trace = pkgerrors.New(e.Error())
	}

	return e
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := e.Message
	if msg == "" {
		msg = e.Description
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}

	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// returns the status, falling back to 500 when unset
func (e *Error) HTTPStatus() int {
	if e == nil || e.Status == 0 {
		return http.StatusInternalServerError
	}

	return e.Status
}

// returns the kind as a log-friendly string
func (e *Error) KindName() string {
	return e.Kind.String()
}

// returns the stack trace captured at construction
func (e *Error) Stack() string {
	if e == nil || e.trace == nil {
		return ""
	}

	return fmt.Sprintf("%+v", e.trace)
}

// reports whether err carries a NoResponse error anywhere in its chain
func IsNoResponse(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNoResponse
}

// returns the kind of the first *Error in err's chain
func KindOf(err error) (Kind, bool) {
	var e *Error
	if As(err, &e) {
		return e.Kind, true
	}

	return 0, false
}
