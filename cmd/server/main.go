package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/algopatterns/envelope/internal/config"
	"codeberg.org/algopatterns/envelope/internal/logger"
)

func main() {
	// load configuration from environment, then CLI overrides
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	if err := cfg.Apply(config.ParseServerFlags(os.Args[1:])); err != nil {
		logger.Fatal("invalid command line flags", "error", err)
	}

	logger.SetDefault(logger.New(cfg.Environment, cfg.LogLevel))
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	logger.Info("starting envelope server", "environment", cfg.Environment)

	ctx := context.Background()

	srv, err := NewServer(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorErr(err, "server forced to shutdown")
	}

	srv.Close()

	logger.Info("server stopped")
}
