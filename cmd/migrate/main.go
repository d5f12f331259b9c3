package main

import (
	"fmt"
	"os"

	"github.com/devfinds/devfinds/internal/config"
	"github.com/devfinds/devfinds/internal/database"
	"github.com/devfinds/devfinds/internal/logger"
)

func main() {
	// Parse command
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		runMigrationsUp()
	case "down":
		fmt.Println("❌ Migration rollback is not supported; the schema is managed by GORM AutoMigrate")
		os.Exit(1)
	default:
		fmt.Println("Usage: migrate [up]")
		fmt.Println("  up     - Create or update the users and friend_edges tables")
		os.Exit(1)
	}
}

func runMigrationsUp() {
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

	logger.Log.Info("🔄 Connecting to database...")
	if err := database.Initialize(cfg); err != nil {
		logger.FatalWithFields("❌ Failed to connect to database", err)
	}
	defer database.Close()

	logger.Log.Info("📈 Running migrations...")
	if err := database.Migrate(database.DB); err != nil {
		logger.FatalWithFields("❌ Migration failed", err)
	}

	logger.Log.Info("✅ All migrations completed successfully!")
}
