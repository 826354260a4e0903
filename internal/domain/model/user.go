package model

import (
	"time"
)

type User struct {
	ID              int64           `json:"id"`
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	FullName        string          `json:"full_name"`
	PasswordHash    string          `json:"-"` // Not exposed
	Bio             string          `json:"bio"`
	GithubURL       string          `json:"github_url"`
	LinkedinURL     string          `json:"linkedin_url"`
	PortfolioURL    string          `json:"portfolio_url"`
	AvatarURL       string          `json:"avatar_url"`
	Skills          string          `json:"skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	IsAvailable     bool            `json:"is_available"`
	DarkMode        bool            `json:"dark_mode"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// UserSummary is the public slice of a user embedded in other resources.
type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, AvatarURL: u.AvatarURL}
}

// UserProfilePatch holds the profile fields a user may change about themselves.
type UserProfilePatch struct {
	FullName        *string          `json:"full_name" validate:"omitempty,max=100"`
	Bio             *string          `json:"bio"`
	GithubURL       *string          `json:"github_url" validate:"omitempty,max=200"`
	LinkedinURL     *string          `json:"linkedin_url" validate:"omitempty,max=200"`
	PortfolioURL    *string          `json:"portfolio_url" validate:"omitempty,max=200"`
	Skills          *string          `json:"skills"`
	ExperienceLevel *ExperienceLevel `json:"experience_level"`
	IsAvailable     *bool            `json:"is_available"`
	DarkMode        *bool            `json:"dark_mode"`
}

// Apply copies every set field onto u.
func (p *UserProfilePatch) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.GithubURL != nil {
		u.GithubURL = *p.GithubURL
	}
	if p.LinkedinURL != nil {
		u.LinkedinURL = *p.LinkedinURL
	}
	if p.PortfolioURL != nil {
		u.PortfolioURL = *p.PortfolioURL
	}
	if p.Skills != nil {
		u.Skills = *p.Skills
	}
	if p.ExperienceLevel != nil {
		u.ExperienceLevel = *p.ExperienceLevel
	}
	if p.IsAvailable != nil {
		u.IsAvailable = *p.IsAvailable
	}
	if p.DarkMode != nil {
		u.DarkMode = *p.DarkMode
	}
}
