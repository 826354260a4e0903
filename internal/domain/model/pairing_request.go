package model

import (
	"time"
)

type PairingRequest struct {
	ID              int64         `json:"id"`
	Message         string        `json:"message"`
	Status          PairingStatus `json:"status"`
	ResponseMessage string        `json:"response_message"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	RequesterID     int64         `json:"requester_id"`
	ProjectID       int64         `json:"project_id"`

	Requester *UserSummary    `json:"requester,omitempty"`
	Project   *ProjectSummary `json:"project,omitempty"`
}

// ProjectSummary identifies a project inside other resources.
type ProjectSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type PairingRequestPage struct {
	Requests    []PairingRequest `json:"requests"`
	Total       int              `json:"total"`
	Pages       int              `json:"pages"`
	CurrentPage int              `json:"current_page"`
}
