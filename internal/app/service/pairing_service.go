package service

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository"
	"devpair/internal/platform/database"
	"devpair/internal/platform/logger"
	"devpair/internal/platform/metrics"
	"fmt"
)

type PairingService struct {
	requestRepo      repository.PairingRequestRepository
	projectRepo      repository.ProjectRepository
	collaboratorRepo repository.CollaboratorRepository
	userRepo         repository.UserRepository
	notifications    *NotificationService
	tx               database.Transactor
}

func NewPairingService(
	requestRepo repository.PairingRequestRepository,
	projectRepo repository.ProjectRepository,
	collaboratorRepo repository.CollaboratorRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
	tx database.Transactor,
) *PairingService {
	return &PairingService{
		requestRepo:      requestRepo,
		projectRepo:      projectRepo,
		collaboratorRepo: collaboratorRepo,
		userRepo:         userRepo,
		notifications:    notifications,
		tx:               tx,
	}
}

type CreatePairingRequest struct {
	Message string `json:"message"`
}

type UpdatePairingRequest struct {
	Status          model.PairingStatus `json:"status" validate:"required"`
	ResponseMessage *string             `json:"response_message"`
}

// Create files a request from requesterID and notifies the project owner in
// the same transaction. Any earlier request for the pair, whatever its
// status, blocks a new one.
func (s *PairingService) Create(ctx context.Context, requesterID, projectID int64, req CreatePairingRequest) (*model.PairingRequest, error) {
	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("requester %d: %w", requesterID, err)
	}

	var created *model.PairingRequest
	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		project, err := s.projectRepo.FindByIDForUpdate(ctx, tx, projectID)
		if err != nil {
			return fmt.Errorf("project %d: %w", projectID, err)
		}

		exists, err := s.requestRepo.ExistsForRequester(ctx, tx, requesterID, projectID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("user %d on project %d: %w", requesterID, projectID, common.ErrDuplicateRequest)
		}

		pr := &model.PairingRequest{
			Message:     req.Message,
			Status:      model.PairingPending,
			RequesterID: requesterID,
			ProjectID:   projectID,
		}
		if err := s.requestRepo.Create(ctx, tx, pr); err != nil {
			return fmt.Errorf("failed to create pairing request: %w", err)
		}

		note := &model.Notification{
			Title:   "New Pairing Request",
			Message: fmt.Sprintf("%s wants to collaborate on %s", requester.Username, project.Title),
			Type:    model.NotificationPairingRequest,
			UserID:  project.OwnerID,
		}
		if err := s.notifications.Notify(ctx, tx, note); err != nil {
			return err
		}

		pr.Requester = requester.Summary()
		pr.Project = &model.ProjectSummary{ID: project.ID, Title: project.Title}
		created = pr
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncDomainEvent("pairing_request_created")
	logger.Ctx(ctx).Info().Int64("request_id", created.ID).Int64("project_id", projectID).Msg("pairing request created")
	return created, nil
}

// RequireProjectOwner loads the request and checks userID owns its project.
func (s *PairingService) RequireProjectOwner(ctx context.Context, requestID, userID int64) (*model.PairingRequest, error) {
	pr, err := s.requestRepo.FindByID(ctx, nil, requestID)
	if err != nil {
		return nil, fmt.Errorf("pairing request %d: %w", requestID, err)
	}
	project, err := s.projectRepo.FindByID(ctx, pr.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("project %d: %w", pr.ProjectID, err)
	}
	if project.OwnerID != userID {
		return nil, fmt.Errorf("user %d does not own project %d: %w", userID, project.ID, common.ErrForbidden)
	}
	return pr, nil
}

// UpdateStatus transitions a request already authorized through
// RequireProjectOwner. Approval adds the requester as a contributor; a
// repeated approval fails on the collaborator uniqueness and nothing persists.
func (s *PairingService) UpdateStatus(ctx context.Context, pr *model.PairingRequest, req UpdatePairingRequest) (*model.PairingRequest, error) {
	if !req.Status.Valid() {
		return nil, common.Validationf("status must be one of: pending, approved, rejected")
	}

	pr.Status = req.Status
	pr.ResponseMessage = ""
	if req.ResponseMessage != nil {
		pr.ResponseMessage = *req.ResponseMessage
	}

	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.requestRepo.UpdateStatus(ctx, tx, pr); err != nil {
			return fmt.Errorf("failed to update pairing request: %w", err)
		}

		if pr.Status == model.PairingApproved {
			collaborator := &model.Collaborator{
				Role:      model.RoleContributor,
				UserID:    pr.RequesterID,
				ProjectID: pr.ProjectID,
			}
			if err := s.collaboratorRepo.Create(ctx, tx, collaborator); err != nil {
				return err
			}
		}

		note := &model.Notification{
			Title:   "Pairing Request Update",
			Message: statusMessage(pr.Status),
			Type:    model.NotificationPairingRequestUpdate,
			UserID:  pr.RequesterID,
		}
		return s.notifications.Notify(ctx, tx, note)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncDomainEvent("pairing_request_" + string(pr.Status))
	return pr, nil
}

func statusMessage(status model.PairingStatus) string {
	switch status {
	case model.PairingApproved:
		return "Your pairing request has been approved!"
	case model.PairingRejected:
		return "Your pairing request has been rejected."
	default:
		return "Your pairing request status has been updated."
	}
}

// ListForProject pages through a project's requests, newest first. Caller
// must have passed the owner check.
func (s *PairingService) ListForProject(ctx context.Context, projectID int64, page, perPage int) (*model.PairingRequestPage, error) {
	p := NewPagination(page, perPage)
	requests, total, err := s.requestRepo.ListByProject(ctx, projectID, p.PerPage, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list pairing requests: %w", err)
	}
	return &model.PairingRequestPage{
		Requests:    requests,
		Total:       total,
		Pages:       p.Pages(total),
		CurrentPage: p.Page,
	}, nil
}

func (s *PairingService) ListMine(ctx context.Context, requesterID int64) ([]model.PairingRequest, error) {
	requests, err := s.requestRepo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairing requests: %w", err)
	}
	return requests, nil
}
