package container

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devfinds/devfinds/internal/config"
	"github.com/devfinds/devfinds/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "development",
		JWTSecret:   []byte("container-test-secret"),
		TokenTTL:    time.Hour,
		EmailFrom:   "no-reply@devfinds.test",
	}
}

func TestBuildWithoutRedis(t *testing.T) {
	c, err := Build(testConfig(), newTestDB(t))
	require.NoError(t, err)
	defer c.Cleanup(context.Background())

	assert.Nil(t, c.Cache())
	assert.NotNil(t, c.Auth())
	assert.NotNil(t, c.Relationships())
	assert.NoError(t, c.Health())

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	cancel()
	c.Wait()
}

func TestHandlersServeHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, err := Build(testConfig(), newTestDB(t))
	require.NoError(t, err)
	defer c.Cleanup(context.Background())

	r := gin.New()
	r.GET("/health", c.Handlers(false).Health)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidateReportsMissing(t *testing.T) {
	err := New().Validate()
	require.Error(t, err)

	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.Contains(t, missing.Deps, "database")
	assert.Contains(t, missing.Deps, "auth service")
}

func TestHealthWithoutDB(t *testing.T) {
	err := New().Health()
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.EqualError(t, err, "database not registered")
}

func TestCleanupRunsInReverseOrder(t *testing.T) {
	var order []int
	c := New()
	for i := 1; i <= 3; i++ {
		c.OnCleanup(func(context.Context) error {
			order = append(order, i)
			if i == 2 {
				return errors.New("boom")
			}
			return nil
		})
	}

	c.Cleanup(context.Background())
	assert.Equal(t, []int{3, 2, 1}, order)

	c.Cleanup(context.Background())
	assert.Len(t, order, 3)
}
