package model

import (
	"time"
)

type Milestone struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ProjectID   int64      `json:"project_id"`
}

type MilestonePatch struct {
	Title       *string      `json:"title" validate:"omitempty,max=200"`
	Description *string      `json:"description"`
	IsCompleted *bool        `json:"is_completed"`
	DueDate     NullableTime `json:"due_date"`
}

// Apply copies every set field onto m. completed_at is stamped on the
// false to true transition only and is never cleared.
func (patch *MilestonePatch) Apply(m *Milestone, now time.Time) {
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.IsCompleted != nil {
		if *patch.IsCompleted && !m.IsCompleted {
			stamp := now
			m.CompletedAt = &stamp
		}
		m.IsCompleted = *patch.IsCompleted
	}
	if patch.DueDate.Set {
		m.DueDate = patch.DueDate.Ptr()
	}
}
