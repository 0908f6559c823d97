package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/beachwatch/internal/adapter/beachwatch"
	httpadapter "github.com/couchcryptid/beachwatch/internal/adapter/http"
	"github.com/couchcryptid/beachwatch/internal/config"
	"github.com/couchcryptid/beachwatch/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := beachwatch.NewClient(cfg.BeachwatchURL, cfg.UserAgent, cfg.RequestTimeout, metrics, logger)
	logger.Info("beachwatch client configured", "url", cfg.BeachwatchURL, "timeout", cfg.RequestTimeout)

	srv := httpadapter.NewServer(cfg.HTTPAddr, client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
