package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Presence values stored in User.Status
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// User represents a DevFinds developer account
type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:text;not null" json:"-"`

	// Profile data
	Image                 *string  `gorm:"type:text" json:"image"`
	ProgrammingExperience string   `gorm:"type:text" json:"programmingExperience"`
	LearnedTechnologies   []string `gorm:"type:text;serializer:json" json:"learnedTechnologies"`

	// Activity tracking
	Status       string     `gorm:"type:varchar(16);default:offline" json:"status"`
	LastActiveAt *time.Time `json:"lastActiveAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an ID and normalizes the e-mail address
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Email = NormalizeEmail(u.Email)
	if u.Status == "" {
		u.Status = StatusOffline
	}
	return nil
}

// NormalizeEmail lower-cases and trims an e-mail address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ImageOrEmpty returns the avatar reference or "" when the user has none
func (u *User) ImageOrEmpty() string {
	if u.Image == nil {
		return ""
	}
	return *u.Image
}
