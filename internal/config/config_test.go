package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("TOKEN_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8787", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Contains(t, cfg.DatabaseURL, "dbname=devfinds")
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadRequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("CORS_ORIGINS", "https://a.dev, https://b.dev,")
	t.Setenv("RATE_LIMIT_AUTH_PER_MINUTE", "3")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("REDIS_HOST", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.AuthRateLimitPerMin)
	assert.True(t, cfg.TracingEnabled)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}
