package seed

import (
	"context"
	"testing"

	"github.com/devfinds/devfinds/internal/database"
	"github.com/devfinds/devfinds/internal/models"
	"github.com/devfinds/devfinds/internal/relationship"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewSeeder(db), db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeedTestBuildsFixedGraph(t *testing.T) {
	s, db := newTestSeeder(t)
	ctx := context.Background()

	stats, err := s.SeedTest(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 5, Requests: 2, Friends: 1}, stats)
	assert.Equal(t, int64(3), count(t, db, &models.FriendEdge{}))

	alice, err := s.users.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	bob, err := s.users.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)

	status, err := s.relationships.StatusBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, relationship.StatusFriends, status)

	inbound, err := s.relationships.CountInboundRequests(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inbound)
}

func TestSeedTestIsIdempotent(t *testing.T) {
	s, db := newTestSeeder(t)
	ctx := context.Background()

	_, err := s.SeedTest(ctx)
	require.NoError(t, err)
	stats, err := s.SeedTest(ctx)
	require.NoError(t, err)

	assert.Equal(t, Stats{Users: 5}, stats)
	assert.Equal(t, int64(5), count(t, db, &models.User{}))
	assert.Equal(t, int64(3), count(t, db, &models.FriendEdge{}))
}

func TestSeedDev(t *testing.T) {
	s, db := newTestSeeder(t)

	stats, err := s.SeedDev(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, 15, stats.Users)
	assert.Equal(t, int64(15), count(t, db, &models.User{}))
	assert.Equal(t, int64(stats.Requests+stats.Friends), count(t, db, &models.FriendEdge{}))

	var friends int64
	require.NoError(t, db.Model(&models.FriendEdge{}).Where("state = ?", models.EdgeStateFriends).Count(&friends).Error)
	assert.Equal(t, int64(stats.Friends), friends)
}

func TestClean(t *testing.T) {
	s, db := newTestSeeder(t)
	ctx := context.Background()

	_, err := s.SeedTest(ctx)
	require.NoError(t, err)

	keep := &models.User{Name: "Real", Email: "real@devfinds.dev", PasswordHash: "x"}
	require.NoError(t, s.users.CreateUser(ctx, keep))

	require.NoError(t, s.Clean(ctx))
	assert.Equal(t, int64(1), count(t, db, &models.User{}))
	assert.Equal(t, int64(0), count(t, db, &models.FriendEdge{}))
}
