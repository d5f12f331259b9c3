package auth

import (
	"context"

	"github.com/devfinds/devfinds/internal/models"
)

// AuthServiceInterface defines the contract for authentication operations
type AuthServiceInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) (*models.User, error)

	// ValidateToken verifies a token and loads its user
	ValidateToken(ctx context.Context, tokenString string) (*models.User, error)
}

// Ensure Service implements AuthServiceInterface
var _ AuthServiceInterface = (*Service)(nil)
