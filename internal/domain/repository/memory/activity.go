package memory

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"fmt"
	"slices"
)

type milestoneRepository struct {
	db *DB
}

func (r *milestoneRepository) Create(_ context.Context, m *model.Milestone) error {
	defer r.db.lockWrite(nil)()

	if _, ok := r.db.s.projects[m.ProjectID]; !ok {
		return fmt.Errorf("memory.milestoneRepository.Create: project: %w", common.ErrNotFound)
	}
	now := r.db.now()
	m.ID = r.db.id()
	m.CreatedAt, m.UpdatedAt = now, now
	r.db.s.milestones[m.ID] = *m
	return nil
}

func (r *milestoneRepository) FindByID(_ context.Context, id int64) (*model.Milestone, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	m, ok := r.db.s.milestones[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &m, nil
}

func (r *milestoneRepository) Update(_ context.Context, m *model.Milestone) error {
	defer r.db.lockWrite(nil)()

	if _, ok := r.db.s.milestones[m.ID]; !ok {
		return common.ErrNotFound
	}
	m.UpdatedAt = r.db.now()
	r.db.s.milestones[m.ID] = *m
	return nil
}

func (r *milestoneRepository) Delete(_ context.Context, id int64) error {
	defer r.db.lockWrite(nil)()

	if _, ok := r.db.s.milestones[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.db.s.milestones, id)
	return nil
}

func (r *milestoneRepository) ListByProject(_ context.Context, projectID int64) ([]model.Milestone, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := []model.Milestone{}
	for _, m := range r.db.s.milestones {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b model.Milestone) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}

type notificationRepository struct {
	db *DB
}

func (r *notificationRepository) Create(_ context.Context, tx *sql.Tx, n *model.Notification) error {
	defer r.db.lockWrite(tx)()

	if _, ok := r.db.s.users[n.UserID]; !ok {
		return fmt.Errorf("memory.notificationRepository.Create: user: %w", common.ErrNotFound)
	}
	n.ID = r.db.id()
	n.CreatedAt = r.db.now()
	r.db.s.notifications[n.ID] = *n
	return nil
}

func (r *notificationRepository) FindByID(_ context.Context, id int64) (*model.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n, ok := r.db.s.notifications[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &n, nil
}

func (r *notificationRepository) MarkRead(_ context.Context, id int64) error {
	defer r.db.lockWrite(nil)()

	n, ok := r.db.s.notifications[id]
	if !ok {
		return common.ErrNotFound
	}
	n.IsRead = true
	r.db.s.notifications[id] = n
	return nil
}

func (r *notificationRepository) ListByUser(_ context.Context, userID int64) ([]model.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := []model.Notification{}
	for _, n := range r.db.s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b model.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out, nil
}

type commentRepository struct {
	db *DB
}

func (r *commentRepository) Create(_ context.Context, c *model.Comment) error {
	defer r.db.lockWrite(nil)()

	if _, ok := r.db.s.projects[c.ProjectID]; !ok {
		return fmt.Errorf("memory.commentRepository.Create: %w", common.ErrNotFound)
	}
	now := r.db.now()
	c.ID = r.db.id()
	c.CreatedAt, c.UpdatedAt = now, now
	stored := *c
	stored.Author = nil
	r.db.s.comments[c.ID] = stored
	c.Author = r.db.summary(c.AuthorID)
	return nil
}

func (r *commentRepository) ListByProject(_ context.Context, projectID int64) ([]model.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := []model.Comment{}
	for _, c := range r.db.s.comments {
		if c.ProjectID == projectID {
			c.Author = r.db.summary(c.AuthorID)
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b model.Comment) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}

type dashboardRepository struct {
	db *DB
}

func (r *dashboardRepository) StatsForUser(_ context.Context, userID int64) (*model.DashboardStats, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stats := &model.DashboardStats{}
	for _, p := range r.db.s.projects {
		if p.OwnerID == userID {
			stats.OwnedProjects++
			if p.Status == model.StatusCompleted {
				stats.CompletedProjects++
			}
		}
	}
	for _, c := range r.db.s.collaborators {
		if c.UserID == userID {
			stats.Collaborations++
		}
	}
	for _, req := range r.db.s.requests {
		if req.RequesterID != userID {
			continue
		}
		switch req.Status {
		case model.PairingPending:
			stats.PendingRequests++
		case model.PairingApproved:
			stats.ApprovedRequests++
		}
	}
	for _, n := range r.db.s.notifications {
		if n.UserID == userID && !n.IsRead {
			stats.UnreadNotifications++
		}
	}
	return stats, nil
}
