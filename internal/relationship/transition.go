package relationship

import (
	"errors"
	"time"

	"github.com/devfinds/devfinds/internal/models"
)

var errNotInPair = errors.New("relationship: user is not part of the pair")

// Request is the None -> Pending transition. current is the pair's stored
// edge (nil for none); the returned edge must replace it.
func Request(current *models.FriendEdge, pair Pair, requesterID string) (*models.FriendEdge, error) {
	if !pair.Contains(requesterID) {
		return nil, errNotInPair
	}

	switch StateOf(current) {
	case StateNone:
		return &models.FriendEdge{
			UserLowID:   pair.Low,
			UserHighID:  pair.High,
			State:       models.EdgeStatePending,
			RequesterID: requesterID,
		}, nil
	case StateFriends:
		return nil, ErrAlreadyFriends
	default:
		if current.RequesterID == requesterID {
			return nil, ErrAlreadySent
		}
		return nil, ErrAlreadyReceived
	}
}

// Resolve is the Pending -> Friends | None transition for a request sent by
// requesterID. A nil edge with a nil error means the edge must be removed.
func Resolve(current *models.FriendEdge, requesterID string, decision Decision, now time.Time) (*models.FriendEdge, error) {
	if !decision.Valid() {
		return nil, ErrInvalidDecision
	}
	if !current.IsPendingFrom(requesterID) {
		return nil, ErrRequestNotFound
	}

	if decision == Reject {
		return nil, nil
	}

	next := *current
	next.State = models.EdgeStateFriends
	next.AcceptedAt = &now
	return &next, nil
}
