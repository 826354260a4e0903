package repository

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"errors"
	"fmt"
)

type PairingRequestRepository interface {
	Create(ctx context.Context, tx *sql.Tx, req *model.PairingRequest) error
	FindByID(ctx context.Context, tx *sql.Tx, id int64) (*model.PairingRequest, error)
	ExistsForRequester(ctx context.Context, tx *sql.Tx, requesterID, projectID int64) (bool, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, req *model.PairingRequest) error
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]model.PairingRequest, int, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.PairingRequest, error)
}

type pgPairingRequestRepository struct {
	db *sql.DB
}

func NewPgPairingRequestRepository(db *sql.DB) PairingRequestRepository {
	return &pgPairingRequestRepository{db: db}
}

const pairingRequestSelect = `SELECT r.id, r.message, r.status, r.response_message, r.created_at, r.updated_at,
	r.requester_id, r.project_id, u.id, u.username, u.full_name, u.avatar_url, p.id, p.title
	FROM pairing_requests r
	JOIN users u ON u.id = r.requester_id
	JOIN projects p ON p.id = r.project_id`

func scanPairingRequest(row interface{ Scan(...interface{}) error }, req *model.PairingRequest) error {
	requester := &model.UserSummary{}
	project := &model.ProjectSummary{}
	err := row.Scan(&req.ID, &req.Message, &req.Status, &req.ResponseMessage, &req.CreatedAt, &req.UpdatedAt,
		&req.RequesterID, &req.ProjectID, &requester.ID, &requester.Username, &requester.FullName,
		&requester.AvatarURL, &project.ID, &project.Title)
	if err != nil {
		return err
	}
	req.Requester = requester
	req.Project = project
	return nil
}

func (r *pgPairingRequestRepository) Create(ctx context.Context, tx *sql.Tx, req *model.PairingRequest) error {
	query := `INSERT INTO pairing_requests (message, status, response_message, requester_id, project_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	err := conn(r.db, tx).QueryRowContext(ctx, query,
		req.Message, string(req.Status), req.ResponseMessage, req.RequesterID, req.ProjectID,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if common.IsPgCode(err, common.PgForeignKeyViolation) {
			return fmt.Errorf("pgPairingRequestRepository.Create: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgPairingRequestRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPairingRequestRepository) FindByID(ctx context.Context, tx *sql.Tx, id int64) (*model.PairingRequest, error) {
	query := pairingRequestSelect + ` WHERE r.id = $1`
	req := &model.PairingRequest{}
	if err := scanPairingRequest(conn(r.db, tx).QueryRowContext(ctx, query, id), req); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPairingRequestRepository.FindByID: %w", err)
	}
	return req, nil
}

func (r *pgPairingRequestRepository) ExistsForRequester(ctx context.Context, tx *sql.Tx, requesterID, projectID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM pairing_requests WHERE requester_id = $1 AND project_id = $2)`
	if err := conn(r.db, tx).QueryRowContext(ctx, query, requesterID, projectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgPairingRequestRepository.ExistsForRequester: %w", err)
	}
	return exists, nil
}

func (r *pgPairingRequestRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, req *model.PairingRequest) error {
	query := `UPDATE pairing_requests SET status = $1, response_message = $2, updated_at = NOW()
	          WHERE id = $3
	          RETURNING updated_at`
	err := conn(r.db, tx).QueryRowContext(ctx, query, string(req.Status), req.ResponseMessage, req.ID).Scan(&req.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgPairingRequestRepository.UpdateStatus: %w", err)
	}
	return nil
}

func (r *pgPairingRequestRepository) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]model.PairingRequest, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pairing_requests WHERE project_id = $1`, projectID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgPairingRequestRepository.ListByProject count: %w", err)
	}

	query := pairingRequestSelect + ` WHERE r.project_id = $1 ORDER BY r.created_at DESC, r.id DESC LIMIT $2 OFFSET $3`
	requests, err := r.query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgPairingRequestRepository.ListByProject: %w", err)
	}
	return requests, total, nil
}

func (r *pgPairingRequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]model.PairingRequest, error) {
	query := pairingRequestSelect + ` WHERE r.requester_id = $1 ORDER BY r.created_at DESC, r.id DESC`
	requests, err := r.query(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("pgPairingRequestRepository.ListByRequester: %w", err)
	}
	return requests, nil
}

func (r *pgPairingRequestRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.PairingRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []model.PairingRequest{}
	for rows.Next() {
		var req model.PairingRequest
		if err := scanPairingRequest(rows, &req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
