package relationship

import (
	"context"

	"github.com/devfinds/devfinds/internal/models"
)

// Events is told about relationship changes once they are committed. The
// users are the rows locked by the transaction, so no second lookup is needed.
// Implementations must not block; email.Notifier only enqueues.
type Events interface {
	FriendRequest(ctx context.Context, requester, target *models.User)
	RequestAccepted(ctx context.Context, responder, requester *models.User)
}

// Option configures a Manager
type Option func(*Manager)

// WithEvents reports committed sends and accepts to events
func WithEvents(events Events) Option {
	return func(m *Manager) { m.events = events }
}
