package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/devfinds/devfinds/internal/models"
	"github.com/devfinds/devfinds/internal/relationship"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationshipRepository stores friend edges and implements relationship.Store
type RelationshipRepository struct {
	db *gorm.DB
}

var _ relationship.Store = (*RelationshipRepository)(nil)

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(db *gorm.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// WithPair locks both user rows (in id order, so two transactions on the same
// pair never deadlock) and runs fn inside the transaction.
func (r *RelationshipRepository) WithPair(ctx context.Context, pair relationship.Pair, fn func(tx relationship.PairTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "name", "email").
			Where("id IN ?", pair.IDs()).
			Order("id").
			Find(&users).Error
		if err != nil {
			return fmt.Errorf("lock users: %w", err)
		}

		locked := make(map[string]*models.User, len(users))
		for i := range users {
			locked[users[i].ID] = &users[i]
		}

		return fn(&pairTx{tx: tx, pair: pair, users: locked})
	})
}

// UserExists checks whether a user row exists
func (r *RelationshipRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// Users loads display fields only; password hashes never leave this query
func (r *RelationshipRepository) Users(ctx context.Context, userIDs []string) ([]models.User, error) {
	var users []models.User
	if len(userIDs) == 0 {
		return users, nil
	}

	err := r.db.WithContext(ctx).
		Select("id", "name", "image").
		Where("id IN ?", userIDs).
		Find(&users).Error
	return users, err
}

// Edge reads the pair's edge, nil when the pair has no relationship
func (r *RelationshipRepository) Edge(ctx context.Context, pair relationship.Pair) (*models.FriendEdge, error) {
	return findEdge(r.db.WithContext(ctx), pair)
}

// Pending returns counterpart ids of pending requests, oldest first
func (r *RelationshipRepository) Pending(ctx context.Context, userID string, dir relationship.Direction) ([]string, error) {
	var edges []models.FriendEdge
	err := pendingQuery(r.db.WithContext(ctx), userID, dir).
		Order("created_at ASC, id ASC").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].Other(userID))
	}
	return ids, nil
}

// CountPending counts pending requests in one direction
func (r *RelationshipRepository) CountPending(ctx context.Context, userID string, dir relationship.Direction) (int64, error) {
	var count int64
	err := pendingQuery(r.db.WithContext(ctx), userID, dir).Count(&count).Error
	return count, err
}

// Friends returns the ids of userID's friends, oldest friendship first
func (r *RelationshipRepository) Friends(ctx context.Context, userID string) ([]string, error) {
	var edges []models.FriendEdge
	err := r.db.WithContext(ctx).
		Where("state = ? AND (user_low_id = ? OR user_high_id = ?)", models.EdgeStateFriends, userID, userID).
		Order("created_at ASC, id ASC").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].Other(userID))
	}
	return ids, nil
}

func pendingQuery(db *gorm.DB, userID string, dir relationship.Direction) *gorm.DB {
	q := db.Model(&models.FriendEdge{}).Where("state = ?", models.EdgeStatePending)
	if dir == relationship.Outgoing {
		return q.Where("requester_id = ?", userID)
	}
	return q.Where("(user_low_id = ? OR user_high_id = ?) AND requester_id <> ?", userID, userID, userID)
}

func findEdge(db *gorm.DB, pair relationship.Pair) (*models.FriendEdge, error) {
	var edge models.FriendEdge
	err := db.Where("user_low_id = ? AND user_high_id = ?", pair.Low, pair.High).First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// pairTx is a locked pair inside WithPair
type pairTx struct {
	tx    *gorm.DB
	pair  relationship.Pair
	users map[string]*models.User
}

func (p *pairTx) Present(userID string) bool {
	return p.users[userID] != nil
}

func (p *pairTx) User(userID string) *models.User {
	return p.users[userID]
}

func (p *pairTx) Edge() (*models.FriendEdge, error) {
	return findEdge(p.tx, p.pair)
}

func (p *pairTx) Put(edge *models.FriendEdge) error {
	if edge.UserLowID != p.pair.Low || edge.UserHighID != p.pair.High {
		return fmt.Errorf("edge %s/%s does not belong to locked pair", edge.UserLowID, edge.UserHighID)
	}

	var err error
	if edge.ID == "" {
		err = p.tx.Create(edge).Error
	} else {
		err = p.tx.Save(edge).Error
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return relationship.ErrConcurrentUpdate
	}
	return err
}

func (p *pairTx) Remove(edge *models.FriendEdge) error {
	if edge == nil {
		return nil
	}
	return p.tx.Where("id = ?", edge.ID).Delete(&models.FriendEdge{}).Error
}
