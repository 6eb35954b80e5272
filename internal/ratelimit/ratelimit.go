package ratelimit

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	apperrors "codeberg.org/algopatterns/envelope/internal/errors"
	"codeberg.org/algopatterns/envelope/internal/response"
)

// builds a per-client-IP limiter from a formatted rate such as "100-M"
func Middleware(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(limitReached),
		mgin.WithErrorHandler(limiterFailed),
	), nil
}

func limitReached(c *gin.Context) {
	response.Fail(c, apperrors.NewClient(http.StatusTooManyRequests, apperrors.MsgTooManyRequests429,
		apperrors.WithDescription(apperrors.MsgRateLimited)))
}

func limiterFailed(c *gin.Context, err error) {
	response.Fail(c, apperrors.NewServer(apperrors.WithCause(err)))
}
