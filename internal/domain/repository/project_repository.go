package repository

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id int64) (*model.Project, error)
	// FindByIDForUpdate locks the project row for the rest of tx.
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id int64) error
	ListPublic(ctx context.Context, filter model.ProjectFilter) ([]model.Project, int, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Project, error)
}

type pgProjectRepository struct {
	db *sql.DB
}

func NewPgProjectRepository(db *sql.DB) ProjectRepository {
	return &pgProjectRepository{db: db}
}

const projectSelect = `SELECT p.id, p.title, p.slug, p.description, p.tech_stack, p.tags, p.difficulty_level, p.status,
	p.repository_url, p.demo_url, p.is_public, p.max_collaborators, p.created_at, p.updated_at, p.owner_id,
	u.id, u.username, u.full_name, u.avatar_url
	FROM projects p JOIN users u ON u.id = p.owner_id`

func scanProject(row interface{ Scan(...interface{}) error }, p *model.Project) error {
	owner := &model.UserSummary{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.TechStack, &p.Tags, &p.DifficultyLevel, &p.Status,
		&p.RepositoryURL, &p.DemoURL, &p.IsPublic, &p.MaxCollaborators, &p.CreatedAt, &p.UpdatedAt, &p.OwnerID,
		&owner.ID, &owner.Username, &owner.FullName, &owner.AvatarURL,
	)
	if err != nil {
		return err
	}
	p.Owner = owner
	return nil
}

func (r *pgProjectRepository) Create(ctx context.Context, p *model.Project) error {
	query := `INSERT INTO projects (title, slug, description, tech_stack, tags, difficulty_level, status,
	              repository_url, demo_url, is_public, max_collaborators, owner_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Description, p.TechStack, p.Tags, string(p.DifficultyLevel), string(p.Status),
		p.RepositoryURL, p.DemoURL, p.IsPublic, p.MaxCollaborators, p.OwnerID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if common.IsPgCode(err, common.PgForeignKeyViolation) {
			return fmt.Errorf("pgProjectRepository.Create: owner: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgProjectRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	return r.findByID(ctx, r.db, id, "")
}

func (r *pgProjectRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Project, error) {
	return r.findByID(ctx, conn(r.db, tx), id, " FOR UPDATE OF p")
}

func (r *pgProjectRepository) findByID(ctx context.Context, q dbtx, id int64, suffix string) (*model.Project, error) {
	query := projectSelect + ` WHERE p.id = $1` + suffix
	p := &model.Project{}
	if err := scanProject(q.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProjectRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *pgProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `UPDATE projects SET
	              title = $1, slug = $2, description = $3, tech_stack = $4, tags = $5, difficulty_level = $6,
	              status = $7, repository_url = $8, demo_url = $9, is_public = $10, max_collaborators = $11,
	              updated_at = NOW()
	          WHERE id = $12
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Description, p.TechStack, p.Tags, string(p.DifficultyLevel),
		string(p.Status), p.RepositoryURL, p.DemoURL, p.IsPublic, p.MaxCollaborators, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgProjectRepository.Update: %w", err)
	}
	return nil
}

// Delete relies on the ON DELETE CASCADE foreign keys for child rows.
func (r *pgProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgProjectRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgProjectRepository.Delete: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProjectRepository) ListPublic(ctx context.Context, f model.ProjectFilter) ([]model.Project, int, error) {
	conditions := []string{"p.is_public = TRUE"}
	var args []interface{}
	argID := 1

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", argID, argID))
		args = append(args, "%"+escapeLike(f.Search)+"%")
		argID++
	}
	if f.Status != "" {
		conditions = append(conditions, "p.status = $"+strconv.Itoa(argID))
		args = append(args, string(f.Status))
		argID++
	}
	if f.Difficulty != "" {
		conditions = append(conditions, "p.difficulty_level = $"+strconv.Itoa(argID))
		args = append(args, string(f.Difficulty))
		argID++
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM projects p` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProjectRepository.ListPublic count: %w", err)
	}

	query := projectSelect + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, f.Limit, f.Offset)

	projects, err := r.queryProjects(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProjectRepository.ListPublic: %w", err)
	}
	return projects, total, nil
}

func (r *pgProjectRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Project, error) {
	query := projectSelect + ` WHERE p.owner_id = $1 ORDER BY p.created_at DESC, p.id DESC`
	projects, err := r.queryProjects(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pgProjectRepository.ListByOwner: %w", err)
	}
	return projects, nil
}

func (r *pgProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
