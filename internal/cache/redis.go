// Package cache wraps the Redis connection shared by the email queue and the
// auth rate limiter.
package cache

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/devfinds/devfinds/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrEmpty is returned by BRPop when the wait timed out with nothing to pop
var ErrEmpty = errors.New("cache: list empty")

const connectTimeout = 5 * time.Second

type RedisClient struct {
	client *redis.Client
}

// NewRedisClient dials host:port and fails unless PING succeeds.
// Empty host or port default to localhost:6379.
func NewRedisClient(host, port, password string) (*RedisClient, error) {
	client := redis.NewClient(clientOptions(host, port, password))

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, &ConnectError{Addr: client.Options().Addr, Err: err}
	}

	logger.Log.Info("Redis client connected", zap.String("address", client.Options().Addr))
	return &RedisClient{client: client}, nil
}

func clientOptions(host, port, password string) *redis.Options {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:         net.JoinHostPort(host, port),
		Password:     password,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  connectTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// ConnectError reports a Redis server that did not answer PING at startup
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string { return "connect to redis at " + e.Addr + ": " + e.Err.Error() }
func (e *ConnectError) Unwrap() error { return e.Err }

func (rc *RedisClient) Close() error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Close()
}

func (rc *RedisClient) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// LPush and BRPop together form a FIFO list
func (rc *RedisClient) LPush(ctx context.Context, key string, values ...any) error {
	return rc.client.LPush(ctx, key, values...).Err()
}

// BRPop blocks up to timeout for the oldest element of key
func (rc *RedisClient) BRPop(ctx context.Context, timeout time.Duration, key string) (string, error) {
	res, err := rc.client.BRPop(ctx, timeout, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrEmpty
	case err != nil:
		return "", err
	}
	return res[1], nil
}

func (rc *RedisClient) LLen(ctx context.Context, key string) (int64, error) {
	return rc.client.LLen(ctx, key).Result()
}

func (rc *RedisClient) Del(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

// IncrWindow counts a hit against a fixed window. INCR and EXPIRE NX run in
// one transaction so a key can never be left without a TTL.
func (rc *RedisClient) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
