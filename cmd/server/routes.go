package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"codeberg.org/algopatterns/envelope/api/rest/auditlogs"
	"codeberg.org/algopatterns/envelope/api/rest/health"
	"codeberg.org/algopatterns/envelope/internal/audit"
	"codeberg.org/algopatterns/envelope/internal/auth"
	"codeberg.org/algopatterns/envelope/internal/config"
	"codeberg.org/algopatterns/envelope/internal/ratelimit"
	"codeberg.org/algopatterns/envelope/internal/response"
)

// builds the engine with middleware and all API routes
func NewRouter(cfg *config.Config, store audit.Store) (*gin.Engine, error) {
	limiter, err := ratelimit.Middleware(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to configure rate limiter: %w", err)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// audit wraps everything so error envelopes from later middleware are recorded too
	router.Use(
		cors.New(corsConfig(cfg)),
		audit.Middleware(store),
		response.Recovery(),
		response.ErrorHandler(),
		limiter,
		auth.OptionalAuthMiddleware(),
	)

	router.NoRoute(response.NotFound)
	router.NoMethod(response.MethodNotAllowed)

	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/ping", health.PingHandler)

		auditlogs.RegisterRoutes(v1, store)
	}

	return router, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	return cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
