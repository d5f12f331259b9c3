package email

import (
	"context"

	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/queue"
	"go.uber.org/zap"
)

// LogSender writes jobs to the log instead of sending them. Used in development.
type LogSender struct{}

var _ queue.Sender = LogSender{}

func (LogSender) Send(ctx context.Context, job queue.EmailJob) error {
	logger.Log.Info("Email (not sent, log sender)",
		zap.String("job_id", job.ID),
		zap.String("from", job.From),
		zap.String("to", job.To),
		zap.String("subject", job.Subject),
		zap.String("body", job.Body),
	)
	return nil
}
