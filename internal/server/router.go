// Package server assembles the gin engine: global middleware, the
// observability endpoints and the /api/v1 routes.
package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/devfinds/devfinds/internal/auth"
	"github.com/devfinds/devfinds/internal/cache"
	"github.com/devfinds/devfinds/internal/config"
	"github.com/devfinds/devfinds/internal/errors"
	"github.com/devfinds/devfinds/internal/handlers"
	"github.com/devfinds/devfinds/internal/middleware"
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName identifies the API in traces
const ServiceName = "devfinds-api"

// Dependencies are the collaborators NewRouter wires into routes
type Dependencies struct {
	Handlers  *handlers.Handlers
	Validator auth.TokenValidator
	// Redis backs the auth rate limiter when set; nil keeps it in memory
	Redis *cache.RedisClient
}

// NewRouter builds the HTTP engine
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware("/health", "/metrics"))
	r.Use(middleware.TracingMiddleware(ServiceName)...)
	r.Use(middleware.MetricsMiddleware())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.NoRoute(func(c *gin.Context) {
		util.RespondWithAPIError(c, errors.NotFound("Route not found"))
	})

	h := deps.Handlers
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := auth.RequireAuth(deps.Validator)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			limited := authGroup.Group("", middleware.RateLimit(deps.Redis, "auth", middleware.AuthRateLimitConfig(cfg.AuthRateLimitPerMin)))
			limited.POST("/register", h.Register)
			limited.POST("/login", h.Login)

			authGroup.GET("/logout", requireAuth, h.Logout)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/me", h.Me)
			users.GET("/:id/relationship", h.GetRelationshipStatus)
		}

		friendRequests := api.Group("/friend-requests")
		friendRequests.Use(requireAuth)
		{
			friendRequests.POST("", h.SendFriendRequest)
			friendRequests.GET("", h.GetFriendRequests)
			friendRequests.POST("/resolve", h.ResolveFriendRequest)
			friendRequests.GET("/outgoing", h.GetOutgoingFriendRequests)
			friendRequests.GET("/count", h.GetFriendRequestCount)
		}

		friends := api.Group("/friends")
		friends.Use(requireAuth)
		{
			friends.GET("", h.GetFriends)
			friends.GET("/snapshot", h.GetRelationshipSnapshot)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// credentials cannot be combined with a wildcard origin
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
		config.AllowCredentials = false
		return config
	}
	config.AllowOrigins = origins
	return config
}
