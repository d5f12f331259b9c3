package relationship

import (
	"context"
	"fmt"
	"time"

	"github.com/devfinds/devfinds/internal/dto"
	"github.com/devfinds/devfinds/internal/metrics"
	"github.com/devfinds/devfinds/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/devfinds/devfinds/internal/relationship")

// Manager owns the friend-request lifecycle between users.
// It is stateless; all coordination happens in the Store.
type Manager struct {
	store  Store
	events Events
	now    func() time.Time
}

// NewManager creates a relationship manager on top of store
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Outcome is the result of resolving a request
type Outcome struct {
	RequesterID string `json:"requesterId"`
	ResponderID string `json:"responderId"`
	Status      string `json:"status"`
}

// Message is the confirmation shown to the responder
func (o Outcome) Message() string {
	return fmt.Sprintf("Friend request %s successfully", o.Status)
}

// Snapshot is one user's view of all their relationships
type Snapshot struct {
	UserID     string   `json:"id"`
	Friends    []string `json:"friends"`
	InRequest  []string `json:"inRequest"`
	OutRequest []string `json:"outRequest"`
}

// SendRequest records a pending request from requesterID to targetID
func (m *Manager) SendRequest(ctx context.Context, requesterID, targetID string) (err error) {
	ctx, span := m.start(ctx, "SendRequest",
		attribute.String("requester.id", requesterID),
		attribute.String("target.id", targetID))
	defer func() { m.finish(span, "send_request", err) }()

	if requesterID == targetID {
		exists, err := m.store.UserExists(ctx, targetID)
		if err != nil {
			return internalError("check target", err)
		}
		if !exists {
			return ErrTargetNotFound
		}
		return ErrSelfRequest
	}

	pair, err := NewPair(requesterID, targetID)
	if err != nil {
		return err
	}

	var requester, target *models.User
	err = m.store.WithPair(ctx, pair, func(tx PairTx) error {
		if target = tx.User(targetID); target == nil {
			return ErrTargetNotFound
		}
		if requester = tx.User(requesterID); requester == nil {
			return ErrUserNotFound
		}

		current, err := tx.Edge()
		if err != nil {
			return err
		}
		next, err := Request(current, pair, requesterID)
		if err != nil {
			return err
		}
		return tx.Put(next)
	})
	if err != nil {
		return internalError("send request", err)
	}

	if m.events != nil {
		m.events.FriendRequest(ctx, requester, target)
	}
	return nil
}

// ResolveRequest accepts or rejects the pending request requesterID sent to responderID
func (m *Manager) ResolveRequest(ctx context.Context, responderID, requesterID string, decision Decision) (out Outcome, err error) {
	ctx, span := m.start(ctx, "ResolveRequest",
		attribute.String("responder.id", responderID),
		attribute.String("requester.id", requesterID),
		attribute.String("decision", decision.String()))
	defer func() { m.finish(span, "resolve_request", err) }()

	if !decision.Valid() {
		return Outcome{}, ErrInvalidDecision
	}

	if responderID == requesterID {
		exists, err := m.store.UserExists(ctx, requesterID)
		if err != nil {
			return Outcome{}, internalError("check requester", err)
		}
		if !exists {
			return Outcome{}, ErrRequesterNotFound
		}
		return Outcome{}, ErrRequestNotFound
	}

	pair, err := NewPair(responderID, requesterID)
	if err != nil {
		return Outcome{}, err
	}

	now := m.now()
	var requester, responder *models.User
	err = m.store.WithPair(ctx, pair, func(tx PairTx) error {
		if requester = tx.User(requesterID); requester == nil {
			return ErrRequesterNotFound
		}
		if responder = tx.User(responderID); responder == nil {
			return ErrUserNotFound
		}

		current, err := tx.Edge()
		if err != nil {
			return err
		}
		next, err := Resolve(current, requesterID, decision, now)
		if err != nil {
			return err
		}
		if next == nil {
			return tx.Remove(current)
		}
		return tx.Put(next)
	})
	if err != nil {
		return Outcome{}, internalError("resolve request", err)
	}

	if decision == Accept && m.events != nil {
		m.events.RequestAccepted(ctx, responder, requester)
	}

	return Outcome{
		RequesterID: requesterID,
		ResponderID: responderID,
		Status:      decision.Result(),
	}, nil
}

// ListInboundRequests returns the users who asked userID for friendship
func (m *Manager) ListInboundRequests(ctx context.Context, userID string) (_ []dto.UserSummary, err error) {
	ctx, span := m.start(ctx, "ListInboundRequests", attribute.String("user.id", userID))
	defer func() { m.finish(span, "list_inbound", err) }()

	return m.listRelated(ctx, userID, func() ([]string, error) {
		return m.store.Pending(ctx, userID, Incoming)
	})
}

// ListOutboundRequests returns the users userID has asked for friendship
func (m *Manager) ListOutboundRequests(ctx context.Context, userID string) (_ []dto.UserSummary, err error) {
	ctx, span := m.start(ctx, "ListOutboundRequests", attribute.String("user.id", userID))
	defer func() { m.finish(span, "list_outbound", err) }()

	return m.listRelated(ctx, userID, func() ([]string, error) {
		return m.store.Pending(ctx, userID, Outgoing)
	})
}

// ListFriends returns userID's confirmed friends
func (m *Manager) ListFriends(ctx context.Context, userID string) (_ []dto.UserSummary, err error) {
	ctx, span := m.start(ctx, "ListFriends", attribute.String("user.id", userID))
	defer func() { m.finish(span, "list_friends", err) }()

	return m.listRelated(ctx, userID, func() ([]string, error) {
		return m.store.Friends(ctx, userID)
	})
}

// CountInboundRequests returns how many requests wait for userID's answer
func (m *Manager) CountInboundRequests(ctx context.Context, userID string) (int64, error) {
	if err := m.requireUser(ctx, userID); err != nil {
		return 0, err
	}
	count, err := m.store.CountPending(ctx, userID, Incoming)
	if err != nil {
		return 0, internalError("count inbound", err)
	}
	return count, nil
}

// StatusBetween reports the relationship between viewerID and otherID from the viewer's side
func (m *Manager) StatusBetween(ctx context.Context, viewerID, otherID string) (Status, error) {
	pair, err := NewPair(viewerID, otherID)
	if err != nil {
		return StatusNone, err
	}
	if err := m.requireUser(ctx, otherID); err != nil {
		return StatusNone, err
	}

	edge, err := m.store.Edge(ctx, pair)
	if err != nil {
		return StatusNone, internalError("load edge", err)
	}
	return StatusOf(edge, viewerID), nil
}

// Snapshot collects userID's friends and pending requests in both directions
func (m *Manager) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	if err := m.requireUser(ctx, userID); err != nil {
		return Snapshot{}, err
	}

	friends, err := m.store.Friends(ctx, userID)
	if err != nil {
		return Snapshot{}, internalError("load friends", err)
	}
	in, err := m.store.Pending(ctx, userID, Incoming)
	if err != nil {
		return Snapshot{}, internalError("load inbound", err)
	}
	out, err := m.store.Pending(ctx, userID, Outgoing)
	if err != nil {
		return Snapshot{}, internalError("load outbound", err)
	}

	return Snapshot{
		UserID:     userID,
		Friends:    nonNil(friends),
		InRequest:  nonNil(in),
		OutRequest: nonNil(out),
	}, nil
}

func (m *Manager) listRelated(ctx context.Context, userID string, ids func() ([]string, error)) ([]dto.UserSummary, error) {
	if err := m.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	relatedIDs, err := ids()
	if err != nil {
		return nil, internalError("load related ids", err)
	}
	if len(relatedIDs) == 0 {
		return []dto.UserSummary{}, nil
	}

	users, err := m.store.Users(ctx, relatedIDs)
	if err != nil {
		return nil, internalError("load users", err)
	}

	// Keep the store's ordering of ids; the user query does not preserve it
	byID := make(map[string]int, len(users))
	for i := range users {
		byID[users[i].ID] = i
	}
	summaries := make([]dto.UserSummary, 0, len(relatedIDs))
	for _, id := range relatedIDs {
		if i, ok := byID[id]; ok {
			summaries = append(summaries, dto.ToUserSummary(&users[i]))
		}
	}
	return summaries, nil
}

func (m *Manager) requireUser(ctx context.Context, userID string) error {
	exists, err := m.store.UserExists(ctx, userID)
	if err != nil {
		return internalError("check user", err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func (m *Manager) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "relationship."+name, trace.WithAttributes(attrs...))
}

func (m *Manager) finish(span trace.Span, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		if KindOf(err) == KindInternal {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	span.End()
	metrics.RecordFriendOperation(operation, outcome)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
