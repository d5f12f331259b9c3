package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryQueue is a bounded in-process queue. The server uses it when Redis is
// not configured; jobs are lost on restart.
type MemoryQueue struct {
	jobs      chan EmailJob
	closeOnce sync.Once
	done      chan struct{}
}

var (
	_ EmailQueue = (*MemoryQueue)(nil)
	_ JobSource  = (*MemoryQueue)(nil)
)

// NewMemoryQueue creates a queue holding at most size jobs
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 100
	}
	return &MemoryQueue{
		jobs: make(chan EmailJob, size),
		done: make(chan struct{}),
	}
}

// Enqueue never blocks; it fails with ErrQueueFull instead
func (q *MemoryQueue) Enqueue(ctx context.Context, job EmailJob) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}

	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Dequeue waits up to wait for a job
func (q *MemoryQueue) Dequeue(ctx context.Context, wait time.Duration) (*EmailJob, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case job := <-q.jobs:
		return &job, nil
	case <-timer.C:
		return nil, nil
	case <-q.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len reports how many jobs are waiting
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}

// Close stops further enqueues and wakes waiting workers
func (q *MemoryQueue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}
