package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devfinds/devfinds/internal/cache"
	"github.com/devfinds/devfinds/internal/config"
	"github.com/devfinds/devfinds/internal/email"
	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/metrics"
	"github.com/devfinds/devfinds/internal/queue"
	"go.uber.org/zap"
)

// email-worker drains the Redis e-mail queue and delivers each job through
// Amazon SES (or the log in development).
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

	metrics.Initialize()

	if !cfg.RedisEnabled() {
		logger.Log.Fatal("REDIS_HOST is required for the email worker")
	}
	redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		logger.FatalWithFields("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	var sender queue.Sender = email.LogSender{}
	if !cfg.IsDevelopment() {
		sesSender, err := email.NewSESSender(cfg.AWSRegion, cfg.EmailFrom)
		if err != nil {
			logger.FatalWithFields("Failed to initialize SES", err)
		}
		sender = sesSender
	}
	logger.Log.Info("Email worker configured",
		zap.String("queue", queue.DefaultKey),
		zap.String("sender", fmt.Sprintf("%T", sender)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := queue.NewWorker(queue.NewRedisEmailQueue(redisClient, queue.DefaultKey), sender, 5*time.Second)
	if err := worker.Run(ctx); err != nil {
		logger.ErrorWithFields("Email worker failed", err)
	}
}
