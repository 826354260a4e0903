package repository

import (
	"context"
	"database/sql"
	"devpair/internal/domain/model"
	"fmt"
)

type DashboardRepository interface {
	StatsForUser(ctx context.Context, userID int64) (*model.DashboardStats, error)
}

type pgDashboardRepository struct {
	db *sql.DB
}

func NewPgDashboardRepository(db *sql.DB) DashboardRepository {
	return &pgDashboardRepository{db: db}
}

func (r *pgDashboardRepository) StatsForUser(ctx context.Context, userID int64) (*model.DashboardStats, error) {
	query := `SELECT
	              (SELECT COUNT(*) FROM projects WHERE owner_id = $1),
	              (SELECT COUNT(*) FROM projects WHERE owner_id = $1 AND status = 'completed'),
	              (SELECT COUNT(*) FROM project_collaborators WHERE user_id = $1),
	              (SELECT COUNT(*) FROM pairing_requests WHERE requester_id = $1 AND status = 'pending'),
	              (SELECT COUNT(*) FROM pairing_requests WHERE requester_id = $1 AND status = 'approved'),
	              (SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE)`
	stats := &model.DashboardStats{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.OwnedProjects, &stats.CompletedProjects, &stats.Collaborations,
		&stats.PendingRequests, &stats.ApprovedRequests, &stats.UnreadNotifications,
	)
	if err != nil {
		return nil, fmt.Errorf("pgDashboardRepository.StatsForUser: %w", err)
	}
	return stats, nil
}
