package model

import (
	"time"
)

type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	IsEdited  bool      `json:"is_edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AuthorID  int64     `json:"author_id"`
	ProjectID int64     `json:"project_id"`

	Author *UserSummary `json:"author,omitempty"`
}
