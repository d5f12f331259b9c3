// Package devfinds is the DevFinds API server module.
//
// Binaries live under cmd/ and the implementation under internal/:
//
//   - internal/relationship: friend-request lifecycle (send, accept, reject, queries)
//   - internal/repository: gorm-backed user and friend-edge storage
//   - internal/handlers: HTTP request handlers for all API endpoints
//   - internal/server: gin router and middleware chain
//   - internal/auth: registration, login and JWT sessions
//   - internal/models: data models and database schemas
//   - internal/database: database connection and migrations
//   - internal/email, internal/queue: notification e-mails and their delivery queue
//   - internal/middleware: request ids, logging, tracing, metrics, rate limiting
//   - internal/container: service wiring and shutdown
//
// See the individual package documentation for detailed API reference.
package devfinds
