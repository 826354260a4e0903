package model

import (
	"time"
)

type Collaborator struct {
	ID        int64            `json:"id"`
	Role      CollaboratorRole `json:"role"`
	JoinedAt  time.Time        `json:"joined_at"`
	UserID    int64            `json:"user_id"`
	ProjectID int64            `json:"project_id"`

	User *UserSummary `json:"user,omitempty"`
}
