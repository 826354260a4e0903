package service

import (
	"context"
	"devpair/internal/common"
	"devpair/internal/common/validation"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository"
	"devpair/internal/platform/logger"
	"devpair/internal/platform/metrics"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

type ProjectService struct {
	projectRepo      repository.ProjectRepository
	collaboratorRepo repository.CollaboratorRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, collaboratorRepo repository.CollaboratorRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, collaboratorRepo: collaboratorRepo}
}

type CreateProjectRequest struct {
	Title            string           `json:"title" validate:"required,max=200"`
	Description      string           `json:"description" validate:"required"`
	DifficultyLevel  model.Difficulty `json:"difficulty_level" validate:"required"`
	TechStack        string           `json:"tech_stack"`
	Tags             string           `json:"tags"`
	RepositoryURL    string           `json:"repository_url" validate:"max=200"`
	DemoURL          string           `json:"demo_url" validate:"max=200"`
	MaxCollaborators *int             `json:"max_collaborators"`
	IsPublic         *bool            `json:"is_public"`
}

// ListProjectsQuery carries raw catalog filters; enum values are validated here.
type ListProjectsQuery struct {
	Page       int
	PerPage    int
	Search     string
	Status     string
	Difficulty string
}

func (s *ProjectService) ListPublic(ctx context.Context, q ListProjectsQuery) (*model.ProjectPage, error) {
	filter := model.ProjectFilter{Search: strings.TrimSpace(q.Search)}
	if q.Status != "" {
		status, err := model.ParseProjectStatus(q.Status)
		if err != nil {
			return nil, common.Validationf("%v", err)
		}
		filter.Status = status
	}
	if q.Difficulty != "" {
		difficulty, err := model.ParseDifficulty(q.Difficulty)
		if err != nil {
			return nil, common.Validationf("%v", err)
		}
		filter.Difficulty = difficulty
	}

	page := NewPagination(q.Page, q.PerPage)
	filter.Limit = page.PerPage
	filter.Offset = page.Offset()

	projects, total, err := s.projectRepo.ListPublic(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return &model.ProjectPage{
		Projects:    projects,
		Total:       total,
		Pages:       page.Pages(total),
		CurrentPage: page.Page,
	}, nil
}

func (s *ProjectService) Create(ctx context.Context, ownerID int64, req CreateProjectRequest) (*model.Project, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	project := &model.Project{
		Title:            req.Title,
		Slug:             slug.Make(req.Title),
		Description:      req.Description,
		TechStack:        req.TechStack,
		Tags:             req.Tags,
		DifficultyLevel:  req.DifficultyLevel,
		Status:           model.StatusOngoing,
		RepositoryURL:    req.RepositoryURL,
		DemoURL:          req.DemoURL,
		IsPublic:         true,
		MaxCollaborators: 5,
		OwnerID:          ownerID,
	}
	if req.MaxCollaborators != nil {
		if *req.MaxCollaborators < 1 {
			return nil, common.Validationf("max_collaborators must be at least 1")
		}
		project.MaxCollaborators = *req.MaxCollaborators
	}
	if req.IsPublic != nil {
		project.IsPublic = *req.IsPublic
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	metrics.IncDomainEvent("project_created")
	logger.Ctx(ctx).Info().Int64("project_id", project.ID).Int64("owner_id", ownerID).Msg("project created")
	return project, nil
}

// Get returns the project detail with its collaborators. Private projects
// stay reachable by id.
func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project %d: %w", id, err)
	}
	collaborators, err := s.collaboratorRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load collaborators: %w", err)
	}
	project.Collaborators = collaborators
	return project, nil
}

// RequireOwner loads the project and fails with ErrForbidden unless userID owns it.
func (s *ProjectService) RequireOwner(ctx context.Context, projectID, userID int64) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project %d: %w", projectID, err)
	}
	if project.OwnerID != userID {
		return nil, fmt.Errorf("project %d is not owned by user %d: %w", projectID, userID, common.ErrForbidden)
	}
	return project, nil
}

// RequireEditor allows the owner and any collaborator.
func (s *ProjectService) RequireEditor(ctx context.Context, projectID, userID int64) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project %d: %w", projectID, err)
	}
	if project.OwnerID == userID {
		return project, nil
	}
	ok, err := s.collaboratorRepo.IsCollaborator(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check collaborator: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("user %d cannot edit project %d: %w", userID, projectID, common.ErrForbidden)
	}
	return project, nil
}

// Update applies patch to a project already authorized through RequireOwner.
func (s *ProjectService) Update(ctx context.Context, project *model.Project, patch model.ProjectPatch) (*model.Project, error) {
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
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, common.Validationf("description cannot be empty")
	}
	if patch.MaxCollaborators != nil && *patch.MaxCollaborators < 1 {
		return nil, common.Validationf("max_collaborators must be at least 1")
	}

	if patch.Apply(project) {
		project.Slug = slug.Make(project.Title)
	}
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// Delete removes a project already authorized through RequireOwner.
func (s *ProjectService) Delete(ctx context.Context, project *model.Project) error {
	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	metrics.IncDomainEvent("project_deleted")
	logger.Ctx(ctx).Info().Int64("project_id", project.ID).Msg("project deleted")
	return nil
}

func (s *ProjectService) ListMine(ctx context.Context, ownerID int64) ([]model.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
