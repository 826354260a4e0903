package repository

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"fmt"
)

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Comment, error)
}

type pgCommentRepository struct {
	db *sql.DB
}

func NewPgCommentRepository(db *sql.DB) CommentRepository {
	return &pgCommentRepository{db: db}
}

func (r *pgCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `INSERT INTO comments (content, is_edited, author_id, project_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, c.Content, c.IsEdited, c.AuthorID, c.ProjectID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if common.IsPgCode(err, common.PgForeignKeyViolation) {
			return fmt.Errorf("pgCommentRepository.Create: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgCommentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Comment, error) {
	query := `SELECT c.id, c.content, c.is_edited, c.created_at, c.updated_at, c.author_id, c.project_id,
	                 u.id, u.username, u.full_name, u.avatar_url
	          FROM comments c JOIN users u ON u.id = c.author_id
	          WHERE c.project_id = $1
	          ORDER BY c.created_at ASC, c.id ASC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.ListByProject: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		author := &model.UserSummary{}
		if err := rows.Scan(&c.ID, &c.Content, &c.IsEdited, &c.CreatedAt, &c.UpdatedAt, &c.AuthorID, &c.ProjectID,
			&author.ID, &author.Username, &author.FullName, &author.AvatarURL); err != nil {
			return nil, fmt.Errorf("pgCommentRepository.ListByProject scan: %w", err)
		}
		c.Author = author
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
