package repository

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"errors"
	"fmt"
)

type NotificationRepository interface {
	Create(ctx context.Context, tx *sql.Tx, n *model.Notification) error
	FindByID(ctx context.Context, id int64) (*model.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
}

type pgNotificationRepository struct {
	db *sql.DB
}

func NewPgNotificationRepository(db *sql.DB) NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) Create(ctx context.Context, tx *sql.Tx, n *model.Notification) error {
	query := `INSERT INTO notifications (title, message, type, is_read, user_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	err := conn(r.db, tx).QueryRowContext(ctx, query, n.Title, n.Message, n.Type, n.IsRead, n.UserID).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgNotificationRepository.Create: %w", err)
	}
	return nil
}

func (r *pgNotificationRepository) FindByID(ctx context.Context, id int64) (*model.Notification, error) {
	query := `SELECT id, title, message, type, is_read, created_at, user_id FROM notifications WHERE id = $1`
	n := &model.Notification{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt, &n.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgNotificationRepository.FindByID: %w", err)
	}
	return n, nil
}

func (r *pgNotificationRepository) MarkRead(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgNotificationRepository.MarkRead: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	query := `SELECT id, title, message, type, is_read, created_at, user_id
	          FROM notifications WHERE user_id = $1
	          ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgNotificationRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt, &n.UserID); err != nil {
			return nil, fmt.Errorf("pgNotificationRepository.ListByUser scan: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
