package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/devfinds/devfinds/internal/cache"
)

// RedisEmailQueue is a Redis list used as a FIFO: LPUSH to enqueue, BRPOP to
// dequeue.
type RedisEmailQueue struct {
	client *cache.RedisClient
	key    string
}

var (
	_ EmailQueue = (*RedisEmailQueue)(nil)
	_ JobSource  = (*RedisEmailQueue)(nil)
)

// NewRedisEmailQueue creates a queue on key (DefaultKey when empty)
func NewRedisEmailQueue(client *cache.RedisClient, key string) *RedisEmailQueue {
	if key == "" {
		key = DefaultKey
	}
	return &RedisEmailQueue{client: client, key: key}
}

// Enqueue pushes job onto the list
func (q *RedisEmailQueue) Enqueue(ctx context.Context, job EmailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode email job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload); err != nil {
		return fmt.Errorf("push email job: %w", err)
	}
	return nil
}

// Dequeue blocks up to wait for the oldest job
func (q *RedisEmailQueue) Dequeue(ctx context.Context, wait time.Duration) (*EmailJob, error) {
	raw, err := q.client.BRPop(ctx, wait, q.key)
	if errors.Is(err, cache.ErrEmpty) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pop email job: %w", err)
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, fmt.Errorf("decode email job: %w", err)
	}
	return &job, nil
}

// Len reports how many jobs are waiting
func (q *RedisEmailQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key)
}
