package audit

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/algopatterns/envelope/internal/logger"
)

const (
	recordKey  = "audit_record"
	proceedKey = "audit_proceed"

	persistTimeout = 5 * time.Second
)

// attaches a fresh audit record to every request and persists it afterwards,
// but only when the response stage asked to proceed
func Middleware(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		record := NewRecord(c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Set(recordKey, record)

		c.Next()

		if !Proceeded(c) {
			return
		}

		record.Finish(c.Writer.Status(), time.Since(record.StartedAt))

		// the client may already be gone; the record still has to land
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), persistTimeout)
		defer cancel()

		if err := store.Save(ctx, record); err != nil {
			logger.ErrorErr(err, "failed to persist audit record",
				"audit_id", record.ID.String(),
				"path", record.Path,
			)
		}
	}
}

// returns the record attached by Middleware, or nil
func FromContext(c *gin.Context) *Record {
	v, ok := c.Get(recordKey)
	if !ok {
		return nil
	}

	record, _ := v.(*Record)

	return record
}

// marks the request as ready for the persistence stage
func Proceed(c *gin.Context) {
	c.Set(proceedKey, true)
}

// reports whether Proceed was called for this request
func Proceeded(c *gin.Context) bool {
	return c.GetBool(proceedKey)
}

// sets the authenticated user on the request's record, if any
func SetUser(c *gin.Context, userID string) {
	if record := FromContext(c); record != nil {
		record.UserID = userID
	}
}
