package dto

import (
	"time"

	"github.com/devfinds/devfinds/internal/models"
)

// UserSummary is the display-safe projection used in relationship listings
type UserSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// UserResponse is the caller's own profile (never carries the password hash)
type UserResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Image                 *string   `json:"image"`
	ProgrammingExperience string    `json:"programmingExperience"`
	LearnedTechnologies   []string  `json:"learnedTechnologies"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ToUserSummary converts models.User to UserSummary
func ToUserSummary(user *models.User) UserSummary {
	return UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Image: user.Image,
	}
}

// ToUserResponse converts models.User to UserResponse (excludes sensitive fields)
func ToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	techs := user.LearnedTechnologies
	if techs == nil {
		techs = []string{}
	}
	return &UserResponse{
		ID:                    user.ID,
		Name:                  user.Name,
		Email:                 user.Email,
		Image:                 user.Image,
		ProgrammingExperience: user.ProgrammingExperience,
		LearnedTechnologies:   techs,
		Status:                user.Status,
		CreatedAt:             user.CreatedAt,
	}
}
