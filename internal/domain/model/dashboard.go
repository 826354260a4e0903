package model

type DashboardStats struct {
	OwnedProjects       int `json:"owned_projects"`
	CompletedProjects   int `json:"completed_projects"`
	Collaborations      int `json:"collaborations"`
	PendingRequests     int `json:"pending_requests"`
	ApprovedRequests    int `json:"approved_requests"`
	UnreadNotifications int `json:"unread_notifications"`
}
