package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devfinds/devfinds/internal/config"
	"github.com/devfinds/devfinds/internal/container"
	"github.com/devfinds/devfinds/internal/database"
	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/metrics"
	"github.com/devfinds/devfinds/internal/server"
	"github.com/devfinds/devfinds/internal/telemetry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Log.Info("=== DevFinds server starting ===",
		zap.String("environment", cfg.Environment),
		zap.String("db_driver", cfg.DBDriver),
	)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracer, err := telemetry.InitTracer(telemetry.ConfigFrom(cfg, server.ServiceName))
	if err != nil {
		logger.Log.Warn("Tracing disabled", zap.Error(err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	metrics.Initialize()

	// Initialize database
	if err := database.Initialize(cfg); err != nil {
		logger.FatalWithFields("Failed to initialize database", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(database.DB); err != nil {
		logger.FatalWithFields("Failed to run migrations", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := container.Build(cfg, database.DB)
	if err != nil {
		logger.FatalWithFields("Failed to build services", err)
	}
	deps.Start(ctx)

	r := server.NewRouter(cfg, server.Dependencies{
		Handlers:  deps.Handlers(!cfg.IsDevelopment()),
		Validator: deps.Auth(),
		Redis:     deps.Cache(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info("DevFinds backend listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FatalWithFields("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithFields("Server forced to shutdown", err)
	}
	deps.Wait()
	deps.Cleanup(shutdownCtx)
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.WarnWithFields("Tracer shutdown failed", err)
	}

	logger.Log.Info("Server exited")
}
