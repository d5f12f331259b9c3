// Package container provides dependency management for the DevFinds backend.
// It builds every long-lived service once and tears them down in reverse order.
package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/devfinds/devfinds/internal/auth"
	"github.com/devfinds/devfinds/internal/cache"
	"github.com/devfinds/devfinds/internal/config"
	"github.com/devfinds/devfinds/internal/database"
	"github.com/devfinds/devfinds/internal/email"
	"github.com/devfinds/devfinds/internal/handlers"
	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/queue"
	"github.com/devfinds/devfinds/internal/relationship"
	"github.com/devfinds/devfinds/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	// Core infrastructure
	db     *gorm.DB
	cache  *cache.RedisClient
	emails queue.EmailQueue

	// Services
	users         repository.UserRepository
	relationships *relationship.Manager
	notifier      *email.Notifier
	auth          *auth.Service

	// Background work started by Start
	localWorker *queue.Worker
	workers     sync.WaitGroup

	// Lifecycle hooks
	cleanupFuncs []func(context.Context) error
	mu           sync.Mutex
}

// New creates a new empty container.
// Services should be registered using With* methods or built by Build.
func New() *Container {
	return &Container{
		cleanupFuncs: make([]func(context.Context) error, 0),
	}
}

// Build wires the full service graph for the API server from cfg and an open database.
// Without Redis the e-mail queue lives in memory and is drained by a log-only
// worker started by Start.
func Build(cfg *config.Config, db *gorm.DB) (*Container, error) {
	c := New().WithDB(db)

	if cfg.RedisEnabled() {
		client, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		c.WithCache(client).WithEmailQueue(queue.NewRedisEmailQueue(client, queue.DefaultKey))
		c.OnCleanup(func(context.Context) error { return client.Close() })
	} else {
		logger.Log.Warn("REDIS_HOST not set - e-mails are logged by an in-process worker")
		memQueue := queue.NewMemoryQueue(256)
		c.WithEmailQueue(memQueue)
		c.localWorker = queue.NewWorker(memQueue, email.LogSender{}, time.Second)
		c.OnCleanup(func(context.Context) error {
			memQueue.Close()
			return nil
		})
	}

	c.users = repository.NewUserRepository(db)
	c.notifier = email.NewNotifier(c.emails, cfg.EmailFrom)
	c.relationships = relationship.NewManager(
		repository.NewRelationshipRepository(db),
		relationship.WithEvents(c.notifier),
	)
	c.auth = auth.NewService(c.users, cfg.JWTSecret, cfg.TokenTTL, c.notifier)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Start launches background workers; they stop when ctx is cancelled
func (c *Container) Start(ctx context.Context) {
	if c.localWorker == nil {
		return
	}
	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		_ = c.localWorker.Run(ctx)
	}()
}

// Wait blocks until the workers started by Start have returned
func (c *Container) Wait() {
	c.workers.Wait()
}

// Handlers builds the HTTP handlers over the registered services
func (c *Container) Handlers(secureCookies bool) *handlers.Handlers {
	return handlers.NewHandlers(handlers.Options{
		Auth:          c.auth,
		Relationships: c.relationships,
		Health:        c.Health,
		SecureCookies: secureCookies,
	})
}

// Health checks the database and, when configured, Redis
func (c *Container) Health() error {
	if c.db == nil {
		return fmt.Errorf("database %w", ErrNotRegistered)
	}
	if err := database.Ping(c.db); err != nil {
		return err
	}
	if c.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return c.cache.Ping(ctx)
	}
	return nil
}

// DB returns the database connection
func (c *Container) DB() *gorm.DB { return c.db }

// Cache returns the Redis client, nil when Redis is not configured
func (c *Container) Cache() *cache.RedisClient { return c.cache }

// Auth returns the authentication service
func (c *Container) Auth() *auth.Service { return c.auth }

// Relationships returns the relationship manager
func (c *Container) Relationships() *relationship.Manager { return c.relationships }

// WithDB registers the database connection
func (c *Container) WithDB(db *gorm.DB) *Container {
	c.db = db
	return c
}

// WithCache registers the Redis client
func (c *Container) WithCache(client *cache.RedisClient) *Container {
	c.cache = client
	return c
}

// WithEmailQueue registers the queue notifications are written to
func (c *Container) WithEmailQueue(q queue.EmailQueue) *Container {
	c.emails = q
	return c
}

// OnCleanup registers a cleanup function to be called during shutdown.
// Cleanup functions are called in LIFO order (last registered, first cleaned up).
func (c *Container) OnCleanup(fn func(context.Context) error) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
	return c
}

// Cleanup runs every registered cleanup function in reverse order.
// Failures are logged and do not stop the remaining functions.
func (c *Container) Cleanup(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](ctx); err != nil {
			logger.Log.Error("Cleanup function failed", zap.Int("index", i), zap.Error(err))
		}
	}
	c.cleanupFuncs = c.cleanupFuncs[:0]
}

// Validate checks that all required dependencies are registered
func (c *Container) Validate() error {
	var missing []string
	if c.db == nil {
		missing = append(missing, "database")
	}
	if c.emails == nil {
		missing = append(missing, "email queue")
	}
	if c.auth == nil {
		missing = append(missing, "auth service")
	}
	if c.relationships == nil {
		missing = append(missing, "relationship manager")
	}

	if len(missing) > 0 {
		return &MissingError{Deps: missing}
	}
	return nil
}
