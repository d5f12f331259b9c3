package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/devfinds/devfinds/internal/logger"
	"github.com/devfinds/devfinds/internal/models"
	"github.com/devfinds/devfinds/internal/relationship"
	"github.com/devfinds/devfinds/internal/repository"
	"github.com/devfinds/devfinds/internal/util"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDomain marks accounts created by the seeder
const SeedDomain = "example.com"

// DefaultPassword is the password of every seeded account
const DefaultPassword = "password123"

// Seeder handles database seeding operations
type Seeder struct {
	db            *gorm.DB
	users         repository.UserRepository
	relationships *relationship.Manager
	passwordHash  string
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	// Seed returns an error only for invalid sources
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:            db,
		users:         repository.NewUserRepository(db),
		relationships: relationship.NewManager(repository.NewRelationshipRepository(db)),
	}
}

// Stats summarizes what a seeding run created
type Stats struct {
	Users    int
	Requests int
	Friends  int
}

// SeedDev seeds the development database with count fake developers and a
// random web of pending requests and friendships between them
func (s *Seeder) SeedDev(ctx context.Context, count int) (Stats, error) {
	logger.Log.Info("Creating developers...", zap.Int("count", count))
	users, err := s.seedUsers(ctx, count)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Log.Info("Creating friend requests...")
	stats, err := s.seedRelationships(ctx, users, 4)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to seed relationships: %w", err)
	}
	stats.Users = len(users)
	return stats, nil
}

// SeedTest seeds a small fixed graph:
// alice and bob are friends, carol asked alice, alice asked diana, eve is alone
func (s *Seeder) SeedTest(ctx context.Context) (Stats, error) {
	specs := []struct {
		name string
		tech []string
	}{
		{"Alice", []string{"Go", "PostgreSQL"}},
		{"Bob", []string{"TypeScript", "React"}},
		{"Carol", []string{"Rust"}},
		{"Diana", []string{"Python", "Go"}},
		{"Eve", []string{"Kotlin"}},
	}

	byName := make(map[string]*models.User, len(specs))
	for _, spec := range specs {
		email := fmt.Sprintf("%s@%s", strings.ToLower(spec.name), SeedDomain)
		user, err := s.users.GetUserByEmail(ctx, email)
		if errors.Is(err, repository.ErrUserNotFound) {
			user, err = s.createUser(ctx, spec.name, email, "3 years", spec.tech)
		}
		if err != nil {
			return Stats{}, fmt.Errorf("failed to create test user %s: %w", spec.name, err)
		}
		byName[spec.name] = user
	}

	stats := Stats{Users: len(byName)}
	steps := []struct {
		from, to string
		accept   bool
	}{
		{"Alice", "Bob", true},
		{"Carol", "Alice", false},
		{"Alice", "Diana", false},
	}
	for _, step := range steps {
		created, err := s.connect(ctx, byName[step.from], byName[step.to], step.accept)
		if err != nil {
			return Stats{}, err
		}
		if !created {
			continue
		}
		if step.accept {
			stats.Friends++
		} else {
			stats.Requests++
		}
	}
	return stats, nil
}

// Clean removes all seeded accounts and every edge touching them (use with caution!)
func (s *Seeder) Clean(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seeded := tx.Model(&models.User{}).Select("id").Where("email LIKE ?", "%@"+SeedDomain)
		if err := tx.Where("user_low_id IN (?) OR user_high_id IN (?)", seeded, seeded).
			Delete(&models.FriendEdge{}).Error; err != nil {
			return fmt.Errorf("failed to clean friend_edges: %w", err)
		}
		if err := tx.Where("email LIKE ?", "%@"+SeedDomain).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("failed to clean users: %w", err)
		}
		return nil
	})
}

// seedUsers creates count developers with realistic profile data
func (s *Seeder) seedUsers(ctx context.Context, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for len(users) < count {
		name := gofakeit.Name()
		email := fmt.Sprintf("%s.%d@%s", strings.ToLower(gofakeit.Username()), gofakeit.Number(1, 9999), SeedDomain)

		techCount := gofakeit.Number(1, 4)
		tech := make([]string, 0, techCount)
		for range techCount {
			tech = append(tech, gofakeit.ProgrammingLanguage())
		}
		experience := fmt.Sprintf("%d years", gofakeit.Number(0, 15))

		user, err := s.createUser(ctx, name, email, experience, tech)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// seedRelationships sends up to perUser requests from every user and accepts about half
func (s *Seeder) seedRelationships(ctx context.Context, users []*models.User, perUser int) (Stats, error) {
	var stats Stats
	if len(users) < 2 {
		return stats, nil
	}

	for _, from := range users {
		for range gofakeit.Number(0, perUser) {
			to := users[gofakeit.Number(0, len(users)-1)]
			if to.ID == from.ID {
				continue
			}
			accept := gofakeit.Bool()
			created, err := s.connect(ctx, from, to, accept)
			if err != nil {
				return stats, err
			}
			if !created {
				continue
			}
			if accept {
				stats.Friends++
			} else {
				stats.Requests++
			}
		}
	}
	return stats, nil
}

// connect sends a request from one user to another and optionally accepts it.
// Pairs that are already related are skipped and reported as not created.
func (s *Seeder) connect(ctx context.Context, from, to *models.User, accept bool) (bool, error) {
	err := s.relationships.SendRequest(ctx, from.ID, to.ID)
	if relationship.KindOf(err) == relationship.KindConflict {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("send %s -> %s: %w", from.Name, to.Name, err)
	}
	if !accept {
		return true, nil
	}
	if _, err := s.relationships.ResolveRequest(ctx, to.ID, from.ID, relationship.Accept); err != nil {
		return false, fmt.Errorf("accept %s -> %s: %w", from.Name, to.Name, err)
	}
	return true, nil
}

func (s *Seeder) createUser(ctx context.Context, name, email, experience string, tech []string) (*models.User, error) {
	hash, err := s.hashedPassword()
	if err != nil {
		return nil, err
	}

	image := fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%s", strings.ReplaceAll(name, " ", ""))
	user := &models.User{
		Name:                  name,
		Email:                 email,
		PasswordHash:          hash,
		Image:                 &image,
		ProgrammingExperience: experience,
		LearnedTechnologies:   util.CleanList(tech),
		Status:                models.StatusOffline,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// hashedPassword hashes DefaultPassword once per seeder
func (s *Seeder) hashedPassword() (string, error) {
	if s.passwordHash != "" {
		return s.passwordHash, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	s.passwordHash = string(hash)
	return s.passwordHash, nil
}
