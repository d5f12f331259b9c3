package relationship

import (
	"context"

	"github.com/devfinds/devfinds/internal/models"
)

// Store is the persistence the Manager needs. Implementations must make
// WithPair atomic: either every Put/Remove inside fn is committed or none is.
type Store interface {
	// WithPair runs fn in one transaction with both users of pair locked
	// against concurrent relationship changes.
	WithPair(ctx context.Context, pair Pair, fn func(tx PairTx) error) error

	UserExists(ctx context.Context, userID string) (bool, error)
	// Users loads the given users; missing ids are skipped.
	Users(ctx context.Context, userIDs []string) ([]models.User, error)

	// Edge reads the pair's edge outside a transaction (nil when none)
	Edge(ctx context.Context, pair Pair) (*models.FriendEdge, error)
	// Pending returns the counterpart ids of userID's pending requests in
	// the given direction, oldest first.
	Pending(ctx context.Context, userID string, dir Direction) ([]string, error)
	CountPending(ctx context.Context, userID string, dir Direction) (int64, error)
	Friends(ctx context.Context, userID string) ([]string, error)
}

// PairTx is the view of one locked pair inside Store.WithPair
type PairTx interface {
	// Present reports whether a side of the pair exists as a user
	Present(userID string) bool
	// User is the locked row for a side of the pair, nil when it does not
	// exist. Only id, name and email are loaded.
	User(userID string) *models.User
	Edge() (*models.FriendEdge, error)
	Put(edge *models.FriendEdge) error
	Remove(edge *models.FriendEdge) error
}
