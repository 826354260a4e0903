package service

import (
	"context"
	"devpair/internal/common/validation"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository"
	"devpair/internal/platform/metrics"
	"fmt"
	"strings"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

func NewCommentService(commentRepo repository.CommentRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, projectRepo: projectRepo, userRepo: userRepo}
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (s *CommentService) ListForProject(ctx context.Context, projectID int64) ([]model.Comment, error) {
	comments, err := s.commentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Create lets any authenticated user comment on any existing project.
func (s *CommentService) Create(ctx context.Context, authorID, projectID int64, req CreateCommentRequest) (*model.Comment, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("project %d: %w", projectID, err)
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	c := &model.Comment{Content: req.Content, AuthorID: authorID, ProjectID: projectID}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	if c.Author == nil {
		if author, err := s.userRepo.FindByID(ctx, authorID); err == nil {
			c.Author = author.Summary()
		}
	}
	metrics.IncDomainEvent("comment_created")
	return c, nil
}
