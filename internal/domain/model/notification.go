package model

import (
	"time"
)

const (
	NotificationPairingRequest       = "pairing_request"
	NotificationPairingRequestUpdate = "pairing_request_update"
)

type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
}
