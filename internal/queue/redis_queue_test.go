package queue

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/devfinds/devfinds/internal/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisEmailQueueRoundTrip(t *testing.T) {
	client, err := cache.NewRedisClient(os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"), os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		t.Skipf("Skipping redis queue test: redis not available (%v)", err)
	}
	defer client.Close()

	ctx := context.Background()
	key := "email-queue-test-" + uuid.New().String()
	defer client.Del(ctx, key)

	q := NewRedisEmailQueue(client, key)

	first := NewEmailJob("f@x", "a@x", "first", "body")
	second := NewEmailJob("f@x", "b@x", "second", "body")
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "first", got.Subject)

	got, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	got, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Nil(t, got)
}
