package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EdgeState is the persisted state of a friend edge.
// A pair with no row is in the implicit "none" state.
type EdgeState string

const (
	EdgeStatePending EdgeState = "pending"
	EdgeStateFriends EdgeState = "friends"
)

// FriendEdge is the single row describing the relationship between two users.
// It is keyed by the unordered pair (UserLowID < UserHighID), so both sides of
// a request or a friendship always change together.
type FriendEdge struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserLowID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_friend_edges_pair" json:"userLowId"`
	UserHighID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_friend_edges_pair;index" json:"userHighId"`
	State      EdgeState `gorm:"type:varchar(16);not null;index" json:"state"`

	// RequesterID is the user who sent the request; for pending edges it
	// carries the direction.
	RequesterID string `gorm:"type:varchar(36);not null" json:"requesterId"`

	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// TableName pins the table name
func (FriendEdge) TableName() string {
	return "friend_edges"
}

// BeforeCreate assigns an ID
func (e *FriendEdge) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TargetID returns the side of the edge that did not send the request
func (e *FriendEdge) TargetID() string {
	return e.Other(e.RequesterID)
}

// Other returns the user on the opposite side of userID
func (e *FriendEdge) Other(userID string) string {
	if e.UserLowID == userID {
		return e.UserHighID
	}
	return e.UserLowID
}

// IsPendingFrom reports whether the edge is a pending request sent by requesterID
func (e *FriendEdge) IsPendingFrom(requesterID string) bool {
	return e != nil && e.State == EdgeStatePending && e.RequesterID == requesterID
}
