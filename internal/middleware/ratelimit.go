package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/devfinds/devfinds/internal/errors"
	"github.com/devfinds/devfinds/internal/metrics"
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig allows Limit requests per Window for each key
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyFunc picks the bucket for a request; client IP when nil
	KeyFunc func(c *gin.Context) string
}

// DefaultRateLimitConfig is the API-wide limit
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{Limit: 100, Window: time.Minute, KeyFunc: clientKey}
}

// AuthRateLimitConfig guards register and login. perMinute <= 0 means 10.
func AuthRateLimitConfig(perMinute int) RateLimitConfig {
	if perMinute <= 0 {
		perMinute = 10
	}
	return RateLimitConfig{Limit: perMinute, Window: time.Minute, KeyFunc: clientKey}
}

func clientKey(c *gin.Context) string {
	return c.ClientIP()
}

// RateLimiter is the single-process limiter used when Redis is not configured.
// Each key gets a token bucket of Limit tokens refilled evenly over Window.
type RateLimiter struct {
	config RateLimitConfig
	every  rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func newRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = clientKey
	}
	return &RateLimiter{
		config:  config,
		every:   rate.Limit(float64(config.Limit) / config.Window.Seconds()),
		buckets: make(map[string]*rate.Limiter),
	}
}

// NewRateLimiter returns middleware answering 429 once a key is out of tokens
func NewRateLimiter(config RateLimitConfig) gin.HandlerFunc {
	rl := newRateLimiter(config)
	go rl.cleanupRoutine(time.Minute)

	return func(c *gin.Context) {
		key := rl.config.KeyFunc(c)
		if !rl.Allow(key) {
			rejectRateLimited(c, rl.config.Limit, rl.GetRetryAfter(key))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = rate.NewLimiter(rl.every, rl.config.Limit)
		rl.buckets[key] = b
	}
	return b
}

// Allow spends one token of key's bucket
func (rl *RateLimiter) Allow(key string) bool {
	return rl.bucket(key).Allow()
}

// GetRetryAfter is the whole number of seconds until key has a token again,
// at least 1.
func (rl *RateLimiter) GetRetryAfter(key string) int {
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	rl.mu.Unlock()
	if !ok {
		return 1
	}

	missing := 1 - b.Tokens()
	if missing <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(missing/float64(rl.every))))
}

// evictIdle drops buckets that are full again at now
func (rl *RateLimiter) evictIdle(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	for key, b := range rl.buckets {
		if b.TokensAt(now) >= float64(b.Burst()) {
			delete(rl.buckets, key)
			evicted++
		}
	}
	return evicted
}

func (rl *RateLimiter) cleanupRoutine(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for now := range ticker.C {
		rl.evictIdle(now)
	}
}

func rejectRateLimited(c *gin.Context, limit, retryAfter int) {
	metrics.RecordRateLimitExceeded(c.FullPath(), c.Request.Method)

	h := c.Writer.Header()
	h.Set("Retry-After", strconv.Itoa(retryAfter))
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	h.Set("X-RateLimit-Remaining", "0")
	util.RespondWithAPIError(c, errors.RateLimited("Too many requests, try again later"))
}
