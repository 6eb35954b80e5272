package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/algopatterns/envelope/internal/audit"
	"codeberg.org/algopatterns/envelope/internal/config"
	"codeberg.org/algopatterns/envelope/internal/logger"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	server := &Server{config: cfg}

	if err := server.initAuditStore(ctx); err != nil {
		server.Close()
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := NewRouter(cfg, server.auditStore)
	if err != nil {
		server.Close()
		return nil, err
	}

	server.router = router

	return server, nil
}

func (s *Server) initAuditStore(ctx context.Context) error {
	switch s.config.Audit.Backend {
	case config.AuditBackendPostgres:
		poolConfig, err := pgxpool.ParseConfig(s.config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to parse database config: %w", err)
		}

		poolConfig.MaxConns = 5
		poolConfig.MinConns = 1
		poolConfig.MaxConnLifetime = 30 * time.Minute
		poolConfig.MaxConnIdleTime = 5 * time.Minute

		db, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return fmt.Errorf("failed to create database pool: %w", err)
		}

		s.db = db

		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		store := audit.NewPostgresStore(db)
		if err := store.Initialize(ctx); err != nil {
			return fmt.Errorf("failed to initialize audit table: %w", err)
		}

		s.auditStore = store

	case config.AuditBackendRedis:
		client, err := audit.DialRedis(ctx, s.config.RedisURL)
		if err != nil {
			return err
		}

		s.redis = client
		s.auditStore = audit.NewRedisStore(client, s.config.Audit.Retention)

	default:
		s.auditStore = audit.NewMemoryStore(s.config.Audit.MaxRecords)
	}

	logger.Info("audit store ready", "backend", s.config.Audit.Backend)

	return nil
}

// releases backing connections
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	if s.db != nil {
		s.db.Close()
	}
}
