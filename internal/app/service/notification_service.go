package service

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository"
	"devpair/internal/platform/logger"
	"devpair/internal/platform/metrics"
	"fmt"
)

type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify records a notification inside the caller's transaction.
func (s *NotificationService) Notify(ctx context.Context, tx *sql.Tx, n *model.Notification) error {
	if err := s.notificationRepo.Create(ctx, tx, n); err != nil {
		logger.Ctx(ctx).Error().Err(err).Int64("user_id", n.UserID).Str("type", n.Type).Msg("failed to create notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}
	metrics.IncNotification(n.Type)
	return nil
}

func (s *NotificationService) ListMine(ctx context.Context, userID int64) ([]model.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) (*model.Notification, error) {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("notification %d: %w", id, err)
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("notification %d belongs to another user: %w", id, common.ErrForbidden)
	}
	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	n.IsRead = true
	return n, nil
}
