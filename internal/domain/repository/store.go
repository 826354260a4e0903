package repository

import (
	"database/sql"
	"devpair/internal/platform/database"
)

// Store bundles every repository with the transactor that spans them.
type Store struct {
	Users           UserRepository
	Projects        ProjectRepository
	PairingRequests PairingRequestRepository
	Collaborators   CollaboratorRepository
	Milestones      MilestoneRepository
	Notifications   NotificationRepository
	Comments        CommentRepository
	Dashboard       DashboardRepository
	Tx              database.Transactor
}

func NewPgStore(db *sql.DB) *Store {
	return &Store{
		Users:           NewPgUserRepository(db),
		Projects:        NewPgProjectRepository(db),
		PairingRequests: NewPgPairingRequestRepository(db),
		Collaborators:   NewPgCollaboratorRepository(db),
		Milestones:      NewPgMilestoneRepository(db),
		Notifications:   NewPgNotificationRepository(db),
		Comments:        NewPgCommentRepository(db),
		Dashboard:       NewPgDashboardRepository(db),
		Tx:              database.NewTransactor(db),
	}
}
