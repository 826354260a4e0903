package repository

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"errors"
	"fmt"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, email, full_name, password_hash, bio, github_url, linkedin_url, portfolio_url,
	avatar_url, skills, experience_level, is_available, dark_mode, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }, u *model.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.Bio, &u.GithubURL, &u.LinkedinURL,
		&u.PortfolioURL, &u.AvatarURL, &u.Skills, &u.ExperienceLevel, &u.IsAvailable, &u.DarkMode,
		&u.CreatedAt, &u.UpdatedAt,
	)
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, full_name, password_hash, bio, github_url, linkedin_url,
	              portfolio_url, avatar_url, skills, experience_level, is_available, dark_mode)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FullName, user.PasswordHash, user.Bio, user.GithubURL, user.LinkedinURL,
		user.PortfolioURL, user.AvatarURL, user.Skills, string(user.ExperienceLevel), user.IsAvailable, user.DarkMode,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if common.IsPgCode(err, common.PgUniqueViolation) {
			return fmt.Errorf("pgUserRepository.Create: %w", common.ErrDuplicateIdentifier)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user := &model.User{}
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user := &model.User{}
	if err := scanUser(r.db.QueryRowContext(ctx, query, username), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET
	              full_name = $1, bio = $2, github_url = $3, linkedin_url = $4, portfolio_url = $5,
	              skills = $6, experience_level = $7, is_available = $8, dark_mode = $9, updated_at = NOW()
	          WHERE id = $10
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		user.FullName, user.Bio, user.GithubURL, user.LinkedinURL, user.PortfolioURL,
		user.Skills, string(user.ExperienceLevel), user.IsAvailable, user.DarkMode, user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	return nil
}
