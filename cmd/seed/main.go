package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/devfinds/devfinds/internal/config"
	"github.com/devfinds/devfinds/internal/database"
	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/seed"
	"go.uber.org/zap"
)

func main() {
	// Parse command
	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "dev", "test", "clean":
	default:
		fmt.Println("Usage: seed [dev [count]|test|clean]")
		fmt.Println("  dev   - Seed development database with fake developers and friendships (default 50)")
		fmt.Println("  test  - Seed the fixed alice/bob/carol/diana/eve graph")
		fmt.Println("  clean - Remove all seeded accounts (use with caution)")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	if err := database.Initialize(cfg); err != nil {
		logger.FatalWithFields("❌ Failed to connect to database", err)
	}
	defer database.Close()
	if err := database.Migrate(database.DB); err != nil {
		logger.FatalWithFields("❌ Migration failed", err)
	}
	logger.Log.Info("✅ Database connected")

	ctx := context.Background()
	seeder := seed.NewSeeder(database.DB)

	switch command {
	case "dev":
		count := 50
		if len(os.Args) > 2 {
			if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
				count = n
			}
		}
		logger.Log.Info("🌱 Seeding development database...")
		stats, err := seeder.SeedDev(ctx, count)
		if err != nil {
			logger.FatalWithFields("❌ Seeding failed", err)
		}
		logSeedStats(stats)
	case "test":
		logger.Log.Info("🧪 Seeding test database...")
		stats, err := seeder.SeedTest(ctx)
		if err != nil {
			logger.FatalWithFields("❌ Seeding failed", err)
		}
		logSeedStats(stats)
	case "clean":
		logger.Log.Info("🧹 Cleaning seed data...")
		if err := seeder.Clean(ctx); err != nil {
			logger.FatalWithFields("❌ Clean failed", err)
		}
		logger.Log.Info("✅ Seed data cleaned successfully!")
	}
}

func logSeedStats(stats seed.Stats) {
	logger.Log.Info("✅ Database seeded successfully!",
		zap.Int("users", stats.Users),
		zap.Int("pending_requests", stats.Requests),
		zap.Int("friendships", stats.Friends),
		zap.String("password", seed.DefaultPassword),
	)
}
