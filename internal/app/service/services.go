package service

import (
	"devpair/internal/common/security"
	"devpair/internal/domain/repository"
)

// Services is the full application layer built over one Store.
type Services struct {
	Auth          *AuthService
	Users         *UserService
	Projects      *ProjectService
	Pairing       *PairingService
	Milestones    *MilestoneService
	Notifications *NotificationService
	Comments      *CommentService
	Dashboard     *DashboardService
}

func New(store *repository.Store, revocations security.RevocationStore, bcryptCost int) *Services {
	notifications := NewNotificationService(store.Notifications)
	projects := NewProjectService(store.Projects, store.Collaborators)
	return &Services{
		Auth:          NewAuthService(store.Users, revocations, bcryptCost),
		Users:         NewUserService(store.Users),
		Projects:      projects,
		Pairing:       NewPairingService(store.PairingRequests, store.Projects, store.Collaborators, store.Users, notifications, store.Tx),
		Milestones:    NewMilestoneService(store.Milestones, projects),
		Notifications: notifications,
		Comments:      NewCommentService(store.Comments, store.Projects, store.Users),
		Dashboard:     NewDashboardService(store.Dashboard),
	}
}
