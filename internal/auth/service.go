package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devfinds/devfinds/internal/email"
	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/metrics"
	"github.com/devfinds/devfinds/internal/models"
	"github.com/devfinds/devfinds/internal/repository"
	"github.com/devfinds/devfinds/internal/util"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service handles registration, login and token validation
type Service struct {
	users     repository.UserRepository
	notifier  *email.Notifier
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewService creates a new authentication service. notifier may be nil.
func NewService(users repository.UserRepository, jwtSecret []byte, tokenTTL time.Duration, notifier *email.Notifier) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:     users,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	User      *models.User `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name                  string   `json:"name" binding:"required,min=1,max=80"`
	Email                 string   `json:"email" binding:"required,email"`
	Password              string   `json:"password" binding:"required,min=6,max=72"`
	Image                 *string  `json:"image"`
	ProgrammingExperience string   `json:"programmingExperience"`
	LearnedTechnologies   []string `json:"learnedTechnologies"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user, queues the welcome mail and signs a token
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		metrics.RecordAuthAttempt("register", "exists")
		return nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:                  req.Name,
		Email:                 req.Email,
		PasswordHash:          string(hashedPassword),
		Image:                 req.Image,
		ProgrammingExperience: req.ProgrammingExperience,
		LearnedTechnologies:   util.CleanList(req.LearnedTechnologies),
		Status:                models.StatusOnline,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// lost a race with a concurrent registration
			metrics.RecordAuthAttempt("register", "exists")
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.notifier.Welcome(ctx, user)
	metrics.RecordAuthAttempt("register", "ok")
	logger.Log.Info("User registered", logger.WithUserID(user.ID))

	return s.issue(user)
}

// Login checks credentials and marks the user online
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		metrics.RecordAuthAttempt("login", "invalid")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.RecordAuthAttempt("login", "invalid")
		return nil, ErrInvalidCredentials
	}

	if err := s.users.SetStatus(ctx, user.ID, models.StatusOnline); err != nil {
		logger.Log.Warn("Failed to mark user online", logger.WithUserID(user.ID), zap.Error(err))
	} else {
		user.Status = models.StatusOnline
	}

	metrics.RecordAuthAttempt("login", "ok")
	return s.issue(user)
}

// Logout marks the user offline
func (s *Service) Logout(ctx context.Context, userID string) (*models.User, error) {
	if err := s.users.SetStatus(ctx, userID, models.StatusOffline); err != nil {
		return nil, err
	}
	return s.users.GetUser(ctx, userID)
}

// ValidateToken validates a token and returns fresh user data
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*models.User, error) {
	userID, err := parseToken(s.jwtSecret, tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("load token user: %w", err)
	}
	return user, nil
}

// TokenTTL is how long issued tokens (and the session cookie) live
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *Service) issue(user *models.User) (*AuthResponse, error) {
	token, expiresAt, err := signToken(s.jwtSecret, user.ID, s.tokenTTL, s.now())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}
