package memory

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"fmt"
	"slices"
)

type pairingRequestRepository struct {
	db *DB
}

func (r *pairingRequestRepository) Create(_ context.Context, tx *sql.Tx, req *model.PairingRequest) error {
	defer r.db.lockWrite(tx)()

	if _, ok := r.db.s.projects[req.ProjectID]; !ok {
		return fmt.Errorf("memory.pairingRequestRepository.Create: %w", common.ErrNotFound)
	}
	if _, ok := r.db.s.users[req.RequesterID]; !ok {
		return fmt.Errorf("memory.pairingRequestRepository.Create: %w", common.ErrNotFound)
	}
	now := r.db.now()
	req.ID = r.db.id()
	req.CreatedAt, req.UpdatedAt = now, now
	stored := *req
	stored.Requester, stored.Project = nil, nil
	r.db.s.requests[req.ID] = stored
	r.decorate(req)
	return nil
}

func (r *pairingRequestRepository) FindByID(_ context.Context, _ *sql.Tx, id int64) (*model.PairingRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	req, ok := r.db.s.requests[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	r.decorate(&req)
	return &req, nil
}

func (r *pairingRequestRepository) ExistsForRequester(_ context.Context, _ *sql.Tx, requesterID, projectID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, req := range r.db.s.requests {
		if req.RequesterID == requesterID && req.ProjectID == projectID {
			return true, nil
		}
	}
	return false, nil
}

func (r *pairingRequestRepository) UpdateStatus(_ context.Context, tx *sql.Tx, req *model.PairingRequest) error {
	defer r.db.lockWrite(tx)()

	stored, ok := r.db.s.requests[req.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.Status = req.Status
	stored.ResponseMessage = req.ResponseMessage
	stored.UpdatedAt = r.db.now()
	r.db.s.requests[req.ID] = stored
	req.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *pairingRequestRepository) ListByProject(_ context.Context, projectID int64, limit, offset int) ([]model.PairingRequest, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	matched := r.collect(func(req model.PairingRequest) bool { return req.ProjectID == projectID })
	total := len(matched)
	start := max(0, min(offset, total))
	end := max(start, min(start+limit, total))
	return matched[start:end], total, nil
}

func (r *pairingRequestRepository) ListByRequester(_ context.Context, requesterID int64) ([]model.PairingRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.collect(func(req model.PairingRequest) bool { return req.RequesterID == requesterID }), nil
}

func (r *pairingRequestRepository) collect(keep func(model.PairingRequest) bool) []model.PairingRequest {
	out := []model.PairingRequest{}
	for _, req := range r.db.s.requests {
		if keep(req) {
			r.decorate(&req)
			out = append(out, req)
		}
	}
	slices.SortFunc(out, func(a, b model.PairingRequest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out
}

func (r *pairingRequestRepository) decorate(req *model.PairingRequest) {
	req.Requester = r.db.summary(req.RequesterID)
	if p, ok := r.db.s.projects[req.ProjectID]; ok {
		req.Project = &model.ProjectSummary{ID: p.ID, Title: p.Title}
	}
}

type collaboratorRepository struct {
	db *DB
}

func (r *collaboratorRepository) Create(_ context.Context, tx *sql.Tx, c *model.Collaborator) error {
	defer r.db.lockWrite(tx)()

	for _, existing := range r.db.s.collaborators {
		if existing.UserID == c.UserID && existing.ProjectID == c.ProjectID {
			return fmt.Errorf("memory.collaboratorRepository.Create: %w", common.ErrDuplicateCollaborator)
		}
	}
	c.ID = r.db.id()
	c.JoinedAt = r.db.now()
	stored := *c
	stored.User = nil
	r.db.s.collaborators[c.ID] = stored
	return nil
}

func (r *collaboratorRepository) ListByProject(_ context.Context, projectID int64) ([]model.Collaborator, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := []model.Collaborator{}
	for _, c := range r.db.s.collaborators {
		if c.ProjectID == projectID {
			c.User = r.db.summary(c.UserID)
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b model.Collaborator) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r *collaboratorRepository) IsCollaborator(_ context.Context, projectID, userID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, c := range r.db.s.collaborators {
		if c.ProjectID == projectID && c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}
