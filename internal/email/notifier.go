package email

import (
	"context"
	"fmt"

	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/metrics"
	"github.com/devfinds/devfinds/internal/models"
	"github.com/devfinds/devfinds/internal/queue"
	"go.uber.org/zap"
)

// Notifier turns account and relationship events into queued e-mails.
// Enqueue failures are logged and counted, never returned: a lost e-mail
// must not fail the request that triggered it.
type Notifier struct {
	queue queue.EmailQueue
	from  string
}

// NewNotifier creates a notifier sending from the given address
func NewNotifier(q queue.EmailQueue, from string) *Notifier {
	return &Notifier{queue: q, from: from}
}

// Welcome is sent after registration
func (n *Notifier) Welcome(ctx context.Context, user *models.User) {
	n.enqueue(ctx, "welcome", user.Email,
		"Welcome to DevFinds",
		fmt.Sprintf("Hi %s,\n\nYour DevFinds account is ready. Find developers who share your stack and send them a friend request.\n", user.Name))
}

// FriendRequest tells target that requester wants to connect
func (n *Notifier) FriendRequest(ctx context.Context, requester, target *models.User) {
	n.enqueue(ctx, "friend_request", target.Email,
		fmt.Sprintf("%s sent you a friend request", requester.Name),
		fmt.Sprintf("Hi %s,\n\n%s wants to connect with you on DevFinds. Open your friend requests to accept or reject.\n", target.Name, requester.Name))
}

// RequestAccepted tells requester that responder accepted
func (n *Notifier) RequestAccepted(ctx context.Context, responder, requester *models.User) {
	n.enqueue(ctx, "request_accepted", requester.Email,
		fmt.Sprintf("%s accepted your friend request", responder.Name),
		fmt.Sprintf("Hi %s,\n\n%s accepted your friend request. You are now friends on DevFinds.\n", requester.Name, responder.Name))
}

func (n *Notifier) enqueue(ctx context.Context, kind, to, subject, body string) {
	if n == nil || n.queue == nil || to == "" {
		return
	}

	job := queue.NewEmailJob(n.from, to, subject, body)
	if err := n.queue.Enqueue(ctx, job); err != nil {
		metrics.RecordEmailJob("enqueue_failed")
		logger.Log.Warn("Failed to enqueue email",
			zap.String("kind", kind),
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		return
	}

	metrics.RecordEmailJob("enqueued")
	logger.Log.Debug("Email enqueued", zap.String("kind", kind), zap.String("job_id", job.ID))
}
