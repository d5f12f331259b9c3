package database

import (
	"fmt"
	"time"

	"github.com/devfinds/devfinds/internal/config"
	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connection
var DB *gorm.DB

// Open creates and configures a database connection for the configured driver
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := gormlogger.Default.LogMode(gormlogger.Warn)
	if cfg.IsDevelopment() {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var (
		dialector gorm.Dialector
		maxOpen   = 100
	)
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
		// sqlite serializes writers; one connection keeps transactions from
		// tripping over SQLITE_BUSY
		maxOpen = 1
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := open(dialector, gormLogger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// OpenSQLite opens a sqlite database on a single connection. ":memory:" gives
// a private in-memory database, which is what the test suites use.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := open(sqlite.Open(path), gormlogger.Default.LogMode(gormlogger.Silent))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func open(dialector gorm.Dialector, l gormlogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         l,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Initialize opens the connection and stores it in DB
func Initialize(cfg *config.Config) error {
	db, err := Open(cfg)
	if err != nil {
		return err
	}

	DB = db
	logger.Log.Info("Database connected", zap.String("driver", cfg.DBDriver))
	return nil
}

// Migrate runs auto-migration for all models
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := db.AutoMigrate(&models.User{}, &models.FriendEdge{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Log.Info("Database migrations completed")
	return nil
}

// createIndexes adds the lookup indexes listings rely on
func createIndexes(db *gorm.DB) error {
	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_friend_edges_low_state ON friend_edges (user_low_id, state)",
		"CREATE INDEX IF NOT EXISTS idx_friend_edges_high_state ON friend_edges (user_high_id, state)",
		"CREATE INDEX IF NOT EXISTS idx_friend_edges_requester_state ON friend_edges (requester_id, state)",
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Health checks database connectivity
func Health() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	return Ping(DB)
}

// Ping checks that db can still reach its server
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
