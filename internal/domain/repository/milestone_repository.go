package repository

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"errors"
	"fmt"
)

type MilestoneRepository interface {
	Create(ctx context.Context, m *model.Milestone) error
	FindByID(ctx context.Context, id int64) (*model.Milestone, error)
	Update(ctx context.Context, m *model.Milestone) error
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Milestone, error)
}

type pgMilestoneRepository struct {
	db *sql.DB
}

func NewPgMilestoneRepository(db *sql.DB) MilestoneRepository {
	return &pgMilestoneRepository{db: db}
}

const milestoneColumns = `id, title, description, is_completed, due_date, completed_at, created_at, updated_at, project_id`

func scanMilestone(row interface{ Scan(...interface{}) error }, m *model.Milestone) error {
	return row.Scan(&m.ID, &m.Title, &m.Description, &m.IsCompleted, &m.DueDate, &m.CompletedAt,
		&m.CreatedAt, &m.UpdatedAt, &m.ProjectID)
}

func (r *pgMilestoneRepository) Create(ctx context.Context, m *model.Milestone) error {
	query := `INSERT INTO milestones (title, description, is_completed, due_date, completed_at, project_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, m.Title, m.Description, m.IsCompleted, m.DueDate, m.CompletedAt, m.ProjectID).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if common.IsPgCode(err, common.PgForeignKeyViolation) {
			return fmt.Errorf("pgMilestoneRepository.Create: project: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgMilestoneRepository.Create: %w", err)
	}
	return nil
}

func (r *pgMilestoneRepository) FindByID(ctx context.Context, id int64) (*model.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1`
	m := &model.Milestone{}
	if err := scanMilestone(r.db.QueryRowContext(ctx, query, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgMilestoneRepository.FindByID: %w", err)
	}
	return m, nil
}

func (r *pgMilestoneRepository) Update(ctx context.Context, m *model.Milestone) error {
	query := `UPDATE milestones SET
	              title = $1, description = $2, is_completed = $3, due_date = $4, completed_at = $5, updated_at = NOW()
	          WHERE id = $6
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, m.Title, m.Description, m.IsCompleted, m.DueDate, m.CompletedAt, m.ID).
		Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgMilestoneRepository.Update: %w", err)
	}
	return nil
}

func (r *pgMilestoneRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgMilestoneRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgMilestoneRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE project_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("pgMilestoneRepository.ListByProject: %w", err)
	}
	defer rows.Close()

	milestones := []model.Milestone{}
	for rows.Next() {
		var m model.Milestone
		if err := scanMilestone(rows, &m); err != nil {
			return nil, fmt.Errorf("pgMilestoneRepository.ListByProject scan: %w", err)
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}
