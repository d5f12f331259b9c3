// Package queue carries outbound e-mail jobs from the API to the e-mail worker.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultKey is the Redis list the API pushes onto and the worker drains
const DefaultKey = "email-queue"

var (
	// ErrQueueFull is returned when an in-memory queue has no room left
	ErrQueueFull = errors.New("queue: full")
	// ErrClosed is returned after Close
	ErrClosed = errors.New("queue: closed")
)

// EmailJob is one message waiting to be delivered
type EmailJob struct {
	ID         string    `json:"id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// NewEmailJob stamps a job with an id and enqueue time
func NewEmailJob(from, to, subject, body string) EmailJob {
	return EmailJob{
		ID:         uuid.New().String(),
		From:       from,
		To:         to,
		Subject:    subject,
		Body:       body,
		EnqueuedAt: time.Now().UTC(),
	}
}

// EmailQueue accepts jobs for later delivery
type EmailQueue interface {
	Enqueue(ctx context.Context, job EmailJob) error
}

// JobSource hands jobs to a worker. Dequeue returns (nil, nil) when nothing
// arrived within wait.
type JobSource interface {
	Dequeue(ctx context.Context, wait time.Duration) (*EmailJob, error)
}
