package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPResponseSize      *prometheus.HistogramVec
	HTTPActiveConnections *prometheus.GaugeVec

	// Rate limiting metrics
	RateLimitExceededTotal *prometheus.CounterVec

	// Relationship metrics
	FriendOperationsTotal *prometheus.CounterVec

	// Email queue metrics
	EmailJobsTotal *prometheus.CounterVec

	// Auth metrics
	AuthAttemptsTotal *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "devfinds_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "devfinds_http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			HTTPResponseSize: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "devfinds_http_response_size_bytes",
					Help:    "HTTP response size in bytes",
					Buckets: prometheus.ExponentialBuckets(100, 10, 7),
				},
				[]string{"method", "path", "status"},
			),
			HTTPActiveConnections: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "devfinds_http_active_connections",
					Help: "Number of currently active HTTP connections",
				},
				[]string{"method", "path"},
			),

			RateLimitExceededTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "devfinds_rate_limit_exceeded_total",
					Help: "Total number of rate limit violations",
				},
				[]string{"endpoint", "method"},
			),

			FriendOperationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "devfinds_friend_request_operations_total",
					Help: "Relationship operations by outcome",
				},
				[]string{"operation", "outcome"},
			),

			EmailJobsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "devfinds_email_jobs_total",
					Help: "Email jobs by result (enqueued, enqueue_failed, sent, failed)",
				},
				[]string{"result"},
			),

			AuthAttemptsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "devfinds_auth_attempts_total",
					Help: "Register and login attempts by result",
				},
				[]string{"action", "result"},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance
func Get() *Metrics {
	return Initialize()
}

// RecordFriendOperation counts one relationship operation
func RecordFriendOperation(operation, outcome string) {
	Get().FriendOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordEmailJob counts an email job transition
func RecordEmailJob(result string) {
	Get().EmailJobsTotal.WithLabelValues(result).Inc()
}

// RecordAuthAttempt counts register/login attempts
func RecordAuthAttempt(action, result string) {
	Get().AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

// RecordRateLimitExceeded counts a rejected request
func RecordRateLimitExceeded(endpoint, method string) {
	Get().RateLimitExceededTotal.WithLabelValues(endpoint, method).Inc()
}
