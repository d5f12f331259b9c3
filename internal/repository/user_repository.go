package repository

import (
	"context"
	"errors"
	"time"

	"github.com/devfinds/devfinds/internal/models"
	"gorm.io/gorm"
)

// UserRepository is the account store behind registration, login and user lookups.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetStatus(ctx context.Context, userID, status string) error

	GetUsers(ctx context.Context, userIDs []string) ([]*models.User, error)
	GetTotalUserCount(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser inserts user. A second account for the same email is ErrDuplicateEmail.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" {
		return ErrInvalidInput
	}

	switch err := r.db.WithContext(ctx).Create(user).Error; {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return err
	}
}

func (r *userRepository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return r.findOne(ctx, "id = ?", userID)
}

// GetUserByEmail matches case-insensitively; emails are stored normalized.
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", models.NormalizeEmail(email))
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := new(models.User)
	err := r.db.WithContext(ctx).Where(query, arg).Take(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetStatus stamps presence together with last_active_at.
func (r *userRepository) SetStatus(ctx context.Context, userID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"status":         status,
			"last_active_at": time.Now().UTC(),
		})
	switch {
	case res.Error != nil:
		return res.Error
	case res.RowsAffected == 0:
		return ErrUserNotFound
	}
	return nil
}

// GetUsers skips unknown ids rather than failing.
func (r *userRepository) GetUsers(ctx context.Context, userIDs []string) ([]*models.User, error) {
	users := make([]*models.User, 0, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetTotalUserCount(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
