package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for every DevFinds binary.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	Port        string
	Environment string

	// Database
	DBDriver    string // "postgres" or "sqlite"
	DatabaseURL string
	SQLitePath  string

	// Auth
	JWTSecret []byte
	TokenTTL  time.Duration

	// Logging
	LogLevel string
	LogFile  string

	// Redis (email queue)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Email
	EmailFrom string
	AWSRegion string

	// HTTP
	CORSOrigins         []string
	AuthRateLimitPerMin int

	// Tracing
	TracingEnabled bool
	OTLPEndpoint   string
	SamplingRate   float64
}

// Load reads .env (if present) and the environment.
// JWT_SECRET is mandatory unless ENVIRONMENT=development.
func Load() (*Config, error) {
	// A missing .env is normal in containers
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8787"),
		Environment:         getEnvOrDefault("ENVIRONMENT", "development"),
		DBDriver:            strings.ToLower(getEnvOrDefault("DB_DRIVER", "postgres")),
		SQLitePath:          getEnvOrDefault("SQLITE_PATH", "devfinds.db"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:             getEnvOrDefault("LOG_FILE", "server.log"),
		RedisHost:           os.Getenv("REDIS_HOST"),
		RedisPort:           getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		EmailFrom:           getEnvOrDefault("EMAIL_FROM", "no-reply@devfinds.dev"),
		AWSRegion:           getEnvOrDefault("AWS_REGION", "us-east-1"),
		CORSOrigins:         splitList(getEnvOrDefault("CORS_ORIGINS", "http://localhost:5173")),
		AuthRateLimitPerMin: getEnvInt("RATE_LIMIT_AUTH_PER_MINUTE", 10),
		TracingEnabled:      getEnvBool("OTEL_ENABLED", false),
		OTLPEndpoint:        getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		SamplingRate:        getEnvFloat("OTEL_SAMPLING_RATE", 1.0),
		TokenTTL:            getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" && cfg.DBDriver == "postgres" {
		cfg.DatabaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnvOrDefault("DB_HOST", "localhost"),
			getEnvOrDefault("DB_PORT", "5432"),
			getEnvOrDefault("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			getEnvOrDefault("DB_NAME", "devfinds"),
			getEnvOrDefault("DB_SSLMODE", "disable"),
		)
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", cfg.DBDriver)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required")
		}
		secret = "devfinds-development-secret"
	}
	cfg.JWTSecret = []byte(secret)

	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// RedisEnabled reports whether a Redis host was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
