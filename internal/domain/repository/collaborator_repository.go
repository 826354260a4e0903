package repository

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"fmt"
)

type CollaboratorRepository interface {
	Create(ctx context.Context, tx *sql.Tx, c *model.Collaborator) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Collaborator, error)
	IsCollaborator(ctx context.Context, projectID, userID int64) (bool, error)
}

type pgCollaboratorRepository struct {
	db *sql.DB
}

func NewPgCollaboratorRepository(db *sql.DB) CollaboratorRepository {
	return &pgCollaboratorRepository{db: db}
}

func (r *pgCollaboratorRepository) Create(ctx context.Context, tx *sql.Tx, c *model.Collaborator) error {
	query := `INSERT INTO project_collaborators (role, user_id, project_id)
	          VALUES ($1, $2, $3)
	          RETURNING id, joined_at`
	err := conn(r.db, tx).QueryRowContext(ctx, query, string(c.Role), c.UserID, c.ProjectID).Scan(&c.ID, &c.JoinedAt)
	if err != nil {
		if common.IsPgCode(err, common.PgUniqueViolation) {
			return fmt.Errorf("pgCollaboratorRepository.Create: %w", common.ErrDuplicateCollaborator)
		}
		return fmt.Errorf("pgCollaboratorRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCollaboratorRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Collaborator, error) {
	query := `SELECT c.id, c.role, c.joined_at, c.user_id, c.project_id,
	                 u.id, u.username, u.full_name, u.avatar_url
	          FROM project_collaborators c JOIN users u ON u.id = c.user_id
	          WHERE c.project_id = $1
	          ORDER BY c.joined_at ASC, c.id ASC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("pgCollaboratorRepository.ListByProject: %w", err)
	}
	defer rows.Close()

	collaborators := []model.Collaborator{}
	for rows.Next() {
		var c model.Collaborator
		u := &model.UserSummary{}
		if err := rows.Scan(&c.ID, &c.Role, &c.JoinedAt, &c.UserID, &c.ProjectID,
			&u.ID, &u.Username, &u.FullName, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("pgCollaboratorRepository.ListByProject scan: %w", err)
		}
		c.User = u
		collaborators = append(collaborators, c)
	}
	return collaborators, rows.Err()
}

func (r *pgCollaboratorRepository) IsCollaborator(ctx context.Context, projectID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM project_collaborators WHERE project_id = $1 AND user_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgCollaboratorRepository.IsCollaborator: %w", err)
	}
	return exists, nil
}
