package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/algopatterns/envelope/internal/audit"
	apperrors "codeberg.org/algopatterns/envelope/internal/errors"
	"codeberg.org/algopatterns/envelope/internal/logger"
)

const contentTypeJSON = "application/json; charset=utf-8"

// written when the envelope itself cannot be encoded
var fallbackBody = []byte(`{"data":{},"status":{"type":"ERROR","message":"` +
	apperrors.MsgInternalServerError500 + `","description":"` + apperrors.MsgContactAdministrator + `"}}`)

type ginRequest struct {
	c *gin.Context
}

func (r ginRequest) Audit() *audit.Record {
	return audit.FromContext(r.c)
}

type ginWriter struct {
	c    *gin.Context
	code int
}

func (w *ginWriter) SetStatusCode(code int) {
	w.code = code
}

func (w *ginWriter) WriteJSON(body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		w.c.Data(http.StatusInternalServerError, contentTypeJSON, fallbackBody)
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	w.c.Data(w.code, contentTypeJSON, payload)

	return nil
}

// writes a success (or any non-error) envelope for the request
func Respond(c *gin.Context, items any, status Status, pagination *Pagination) {
	next, err := Send(ginRequest{c}, &ginWriter{c: c}, items, status, pagination)
	proceed(c, next, err)
}

// writes a 200 envelope around items
func Success(c *gin.Context, items any) {
	Respond(c, items, OK(), nil)
}

// writes the error envelope for err and stops the handler chain
func Fail(c *gin.Context, err error) {
	c.Abort()

	next, werr := HandleError(ginRequest{c}, &ginWriter{c: c}, err)
	proceed(c, next, werr)
}

func proceed(c *gin.Context, next Continuation, err error) {
	if err != nil {
		logger.ErrorErr(err, "failed to write response",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
	}

	if next == ContinueToAudit {
		audit.Proceed(c)
	}
}

// turns errors recorded with c.Error into an error envelope when the
// handler wrote nothing itself
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		Fail(c, c.Errors.Last().Err)
	}
}

// converts panics into a server error envelope
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(r)
			}

			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", r)
			}

			serverErr := apperrors.NewServer(apperrors.WithCause(cause))

			if c.Writer.Written() {
				logger.Exception(serverErr)
				c.Abort()
				return
			}

			Fail(c, serverErr)
		}()

		c.Next()
	}
}

// handles requests that matched no route
func NotFound(c *gin.Context) {
	Fail(c, apperrors.NewClient(http.StatusNotFound, apperrors.MsgNotFound404,
		apperrors.WithDescription(apperrors.MsgRouteNotFound)))
}

// handles requests whose path matched but method did not
func MethodNotAllowed(c *gin.Context) {
	Fail(c, apperrors.NewClient(http.StatusMethodNotAllowed, apperrors.MsgMethodNotAllowed405))
}
