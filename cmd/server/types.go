package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"codeberg.org/algopatterns/envelope/internal/audit"
	"codeberg.org/algopatterns/envelope/internal/config"
)

// holds all dependencies and state for the API server
type Server struct {
	config     *config.Config
	auditStore audit.Store
	db         *pgxpool.Pool // nil unless the postgres audit backend is used
	redis      *redis.Client // nil unless the redis audit backend is used
	router     *gin.Engine
}
