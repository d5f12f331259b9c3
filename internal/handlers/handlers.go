package handlers

import (
	"github.com/devfinds/devfinds/internal/auth"
	"github.com/devfinds/devfinds/internal/relationship"
)

// Handlers contains all HTTP handlers for the API. Relationship e-mails are
// sent by the Manager's events, not from here.
type Handlers struct {
	auth          *auth.Service
	relationships *relationship.Manager
	health        func() error

	// secureCookies marks the session cookie Secure + SameSite=None
	secureCookies bool
}

// Options wires the collaborators the handlers depend on
type Options struct {
	Auth          *auth.Service
	Relationships *relationship.Manager
	Health        func() error
	SecureCookies bool
}

// NewHandlers creates a new handlers instance
func NewHandlers(opts Options) *Handlers {
	return &Handlers{
		auth:          opts.Auth,
		relationships: opts.Relationships,
		health:        opts.Health,
		secureCookies: opts.SecureCookies,
	}
}
