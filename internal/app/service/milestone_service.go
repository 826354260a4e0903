package service

import (
	"context"
	"devpair/internal/common"
	"devpair/internal/common/validation"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository"
	"fmt"
	"strings"
	"time"
)

type MilestoneService struct {
	milestoneRepo repository.MilestoneRepository
	projects      *ProjectService
	now           func() time.Time
}

func NewMilestoneService(milestoneRepo repository.MilestoneRepository, projects *ProjectService) *MilestoneService {
	return &MilestoneService{
		milestoneRepo: milestoneRepo,
		projects:      projects,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type CreateMilestoneRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description string             `json:"description"`
	DueDate     model.NullableTime `json:"due_date"`
}

// ListForProject returns milestones oldest first; an unknown project yields an empty list.
func (s *MilestoneService) ListForProject(ctx context.Context, projectID int64) ([]model.Milestone, error) {
	milestones, err := s.milestoneRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

func (s *MilestoneService) Create(ctx context.Context, userID, projectID int64, req CreateMilestoneRequest) (*model.Milestone, error) {
	if _, err := s.projects.RequireEditor(ctx, projectID, userID); err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	m := &model.Milestone{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.Ptr(),
		ProjectID:   projectID,
	}
	if err := s.milestoneRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}
	return m, nil
}

// RequireEditor loads the milestone and checks userID may edit its project.
func (s *MilestoneService) RequireEditor(ctx context.Context, milestoneID, userID int64) (*model.Milestone, error) {
	m, err := s.milestoneRepo.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, fmt.Errorf("milestone %d: %w", milestoneID, err)
	}
	if _, err := s.projects.RequireEditor(ctx, m.ProjectID, userID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MilestoneService) Update(ctx context.Context, m *model.Milestone, patch model.MilestonePatch) (*model.Milestone, error) {
	if err := validation.ValidateStruct(&patch); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, common.Validationf("title cannot be empty")
		}
		patch.Title = &trimmed
	}

	patch.Apply(m, s.now())
	if err := s.milestoneRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}
	return m, nil
}

func (s *MilestoneService) Delete(ctx context.Context, m *model.Milestone) error {
	if err := s.milestoneRepo.Delete(ctx, m.ID); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}
