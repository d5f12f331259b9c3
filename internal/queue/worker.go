package queue

import (
	"context"
	"errors"
	"time"

	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/metrics"
	"go.uber.org/zap"
)

// Sender delivers one job
type Sender interface {
	Send(ctx context.Context, job EmailJob) error
}

// Worker drains a JobSource into a Sender until its context ends. Failed
// sends are logged and dropped; there is no retry.
type Worker struct {
	source  JobSource
	sender  Sender
	wait    time.Duration
	backoff time.Duration
}

// NewWorker creates a worker that polls source every wait
func NewWorker(source JobSource, sender Sender, wait time.Duration) *Worker {
	if wait <= 0 {
		wait = 5 * time.Second
	}
	return &Worker{
		source:  source,
		sender:  sender,
		wait:    wait,
		backoff: time.Second,
	}
}

// Run blocks until ctx is cancelled or the source is closed
func (w *Worker) Run(ctx context.Context) error {
	logger.Log.Info("Email worker started", zap.Duration("poll", w.wait))
	defer logger.Log.Info("Email worker stopped")

	for {
		if ctx.Err() != nil {
			return nil
		}

		job, err := w.source.Dequeue(ctx, w.wait)
		switch {
		case errors.Is(err, ErrClosed):
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		case err != nil:
			logger.ErrorWithFields("Failed to dequeue email job", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.backoff):
			}
			continue
		case job == nil:
			continue
		}

		w.process(ctx, *job)
	}
}

func (w *Worker) process(ctx context.Context, job EmailJob) {
	if err := w.sender.Send(ctx, job); err != nil {
		metrics.RecordEmailJob("failed")
		logger.Log.Error("Failed to send email",
			zap.String("job_id", job.ID),
			zap.String("to", job.To),
			zap.String("subject", job.Subject),
			zap.Error(err),
		)
		return
	}

	metrics.RecordEmailJob("sent")
	logger.Log.Info("Email sent",
		zap.String("job_id", job.ID),
		zap.String("to", job.To),
		zap.Duration("queued_for", time.Since(job.EnqueuedAt)),
	)
}
