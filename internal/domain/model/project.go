package model

import (
	"time"
)

type Project struct {
	ID               int64         `json:"id"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	Description      string        `json:"description"`
	TechStack        string        `json:"tech_stack"`
	Tags             string        `json:"tags"`
	DifficultyLevel  Difficulty    `json:"difficulty_level"`
	Status           ProjectStatus `json:"status"`
	RepositoryURL    string        `json:"repository_url"`
	DemoURL          string        `json:"demo_url"`
	IsPublic         bool          `json:"is_public"`
	MaxCollaborators int           `json:"max_collaborators"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	OwnerID          int64         `json:"owner_id"`

	Owner         *UserSummary   `json:"owner,omitempty"`         // For display
	Collaborators []Collaborator `json:"collaborators,omitempty"` // Detail view only
}

// ProjectPatch holds the owner-editable project fields.
type ProjectPatch struct {
	Title            *string        `json:"title" validate:"omitempty,max=200"`
	Description      *string        `json:"description"`
	TechStack        *string        `json:"tech_stack"`
	Tags             *string        `json:"tags"`
	DifficultyLevel  *Difficulty    `json:"difficulty_level"`
	Status           *ProjectStatus `json:"status"`
	RepositoryURL    *string        `json:"repository_url" validate:"omitempty,max=200"`
	DemoURL          *string        `json:"demo_url" validate:"omitempty,max=200"`
	MaxCollaborators *int           `json:"max_collaborators" validate:"omitempty,gte=1"`
	IsPublic         *bool          `json:"is_public"`
}

// Apply copies every set field onto p and reports whether the title changed.
func (patch *ProjectPatch) Apply(p *Project) (titleChanged bool) {
	if patch.Title != nil && *patch.Title != p.Title {
		p.Title = *patch.Title
		titleChanged = true
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.TechStack != nil {
		p.TechStack = *patch.TechStack
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.DifficultyLevel != nil {
		p.DifficultyLevel = *patch.DifficultyLevel
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.RepositoryURL != nil {
		p.RepositoryURL = *patch.RepositoryURL
	}
	if patch.DemoURL != nil {
		p.DemoURL = *patch.DemoURL
	}
	if patch.MaxCollaborators != nil {
		p.MaxCollaborators = *patch.MaxCollaborators
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
	return titleChanged
}

// ProjectFilter narrows the public catalog listing.
type ProjectFilter struct {
	Search     string
	Status     ProjectStatus
	Difficulty Difficulty
	Limit      int
	Offset     int
}

type ProjectPage struct {
	Projects    []Project `json:"projects"`
	Total       int       `json:"total"`
	Pages       int       `json:"pages"`
	CurrentPage int       `json:"current_page"`
}
