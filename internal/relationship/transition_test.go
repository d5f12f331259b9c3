package relationship

import (
	"errors"
	"testing"
	"time"

	"github.com/devfinds/devfinds/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPair(t *testing.T, a, b string) Pair {
	t.Helper()
	p, err := NewPair(a, b)
	require.NoError(t, err)
	return p
}

func TestNewPair(t *testing.T) {
	p, err := NewPair("bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, Pair{Low: "alice", High: "bob"}, p)

	q, err := NewPair("alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, p, q)
	assert.Equal(t, "bob", p.Other("alice"))
	assert.True(t, p.Contains("bob"))
	assert.False(t, p.Contains("carol"))

	_, err = NewPair("alice", "alice")
	assert.Equal(t, KindInvalidOperation, KindOf(err))
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("Accepted")
	require.NoError(t, err)
	assert.Equal(t, Accept, d)
	assert.Equal(t, "accepted", d.Result())

	d, err = ParseDecision("Rejected")
	require.NoError(t, err)
	assert.Equal(t, Reject, d)
	assert.Equal(t, "rejected", d.Result())

	for _, bad := range []string{"", "accepted", "ACCEPTED", "Maybe"} {
		_, err := ParseDecision(bad)
		assert.ErrorIs(t, err, ErrInvalidDecision, bad)
		assert.Equal(t, KindInvalidArgument, KindOf(err))
	}
	assert.False(t, Decision(0).Valid())
}

func TestRequestFromNone(t *testing.T) {
	p := mustPair(t, "a", "b")

	edge, err := Request(nil, p, "b")
	require.NoError(t, err)
	assert.Equal(t, "a", edge.UserLowID)
	assert.Equal(t, "b", edge.UserHighID)
	assert.Equal(t, models.EdgeStatePending, edge.State)
	assert.Equal(t, "b", edge.RequesterID)
	assert.Equal(t, "a", edge.TargetID())
}

func TestRequestConflicts(t *testing.T) {
	p := mustPair(t, "a", "b")
	pending := &models.FriendEdge{UserLowID: "a", UserHighID: "b", State: models.EdgeStatePending, RequesterID: "a"}
	friends := &models.FriendEdge{UserLowID: "a", UserHighID: "b", State: models.EdgeStateFriends, RequesterID: "a"}

	_, err := Request(pending, p, "a")
	assert.ErrorIs(t, err, ErrAlreadySent)

	_, err = Request(pending, p, "b")
	assert.ErrorIs(t, err, ErrAlreadyReceived)

	_, err = Request(friends, p, "b")
	assert.ErrorIs(t, err, ErrAlreadyFriends)

	for _, err := range []error{ErrAlreadySent, ErrAlreadyReceived, ErrAlreadyFriends} {
		assert.Equal(t, KindConflict, KindOf(err))
	}
}

func TestRequestOutsidePairIsInternal(t *testing.T) {
	_, err := Request(nil, mustPair(t, "a", "b"), "c")
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestResolve(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	pending := &models.FriendEdge{ID: "e1", UserLowID: "a", UserHighID: "b", State: models.EdgeStatePending, RequesterID: "a"}

	accepted, err := Resolve(pending, "a", Accept, now)
	require.NoError(t, err)
	assert.Equal(t, models.EdgeStateFriends, accepted.State)
	assert.Equal(t, "e1", accepted.ID)
	require.NotNil(t, accepted.AcceptedAt)
	assert.Equal(t, now, *accepted.AcceptedAt)
	// input is not mutated
	assert.Equal(t, models.EdgeStatePending, pending.State)

	rejected, err := Resolve(pending, "a", Reject, now)
	require.NoError(t, err)
	assert.Nil(t, rejected)
}

func TestResolveWithoutPending(t *testing.T) {
	now := time.Now()
	pending := &models.FriendEdge{UserLowID: "a", UserHighID: "b", State: models.EdgeStatePending, RequesterID: "a"}
	friends := &models.FriendEdge{UserLowID: "a", UserHighID: "b", State: models.EdgeStateFriends, RequesterID: "a"}

	cases := []struct {
		name      string
		edge      *models.FriendEdge
		requester string
	}{
		{"none", nil, "a"},
		{"wrong direction", pending, "b"},
		{"already friends", friends, "a"},
	}

	for _, tc := range cases {
		_, err := Resolve(tc.edge, tc.requester, Accept, now)
		assert.ErrorIs(t, err, ErrRequestNotFound, tc.name)
	}

	_, err := Resolve(pending, "a", Decision(9), now)
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestStatusOf(t *testing.T) {
	pending := &models.FriendEdge{UserLowID: "a", UserHighID: "b", State: models.EdgeStatePending, RequesterID: "a"}
	friends := &models.FriendEdge{UserLowID: "a", UserHighID: "b", State: models.EdgeStateFriends, RequesterID: "a"}

	assert.Equal(t, StatusNone, StatusOf(nil, "a"))
	assert.Equal(t, StatusPendingOutgoing, StatusOf(pending, "a"))
	assert.Equal(t, StatusPendingIncoming, StatusOf(pending, "b"))
	assert.Equal(t, StatusFriends, StatusOf(friends, "b"))
}

func TestErrorClassification(t *testing.T) {
	plain := errors.New("connection reset")
	wrapped := internalError("load", plain)

	assert.Equal(t, KindInternal, KindOf(plain))
	assert.Equal(t, KindInternal, KindOf(wrapped))
	assert.ErrorIs(t, wrapped, plain)
	assert.Equal(t, "Internal Server Error", MessageOf(wrapped))

	// relationship errors pass through unchanged
	assert.Same(t, ErrAlreadySent, internalError("send", ErrAlreadySent))
	assert.Equal(t, "Friend request already sent", MessageOf(ErrAlreadySent))
	assert.Equal(t, "conflict", KindConflict.String())
}
