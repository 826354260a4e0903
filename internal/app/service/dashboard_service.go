package service

import (
	"context"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository"
	"fmt"
)

type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

func (s *DashboardService) Stats(ctx context.Context, userID int64) (*model.DashboardStats, error) {
	stats, err := s.dashboardRepo.StatsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return stats, nil
}
