package memory

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"fmt"
	"slices"
	"strings"
)

type projectRepository struct {
	db *DB
}

func (r *projectRepository) Create(_ context.Context, p *model.Project) error {
	defer r.db.lockWrite(nil)()

	if _, ok := r.db.s.users[p.OwnerID]; !ok {
		return fmt.Errorf("memory.projectRepository.Create: owner: %w", common.ErrNotFound)
	}
	now := r.db.now()
	p.ID = r.db.id()
	p.CreatedAt, p.UpdatedAt = now, now
	stored := *p
	stored.Owner, stored.Collaborators = nil, nil
	r.db.s.projects[p.ID] = stored
	p.Owner = r.db.summary(p.OwnerID)
	return nil
}

func (r *projectRepository) FindByID(_ context.Context, id int64) (*model.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.find(id)
}

func (r *projectRepository) FindByIDForUpdate(_ context.Context, _ *sql.Tx, id int64) (*model.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.find(id)
}

func (r *projectRepository) find(id int64) (*model.Project, error) {
	p, ok := r.db.s.projects[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	p.Owner = r.db.summary(p.OwnerID)
	return &p, nil
}

func (r *projectRepository) Update(_ context.Context, p *model.Project) error {
	defer r.db.lockWrite(nil)()

	if _, ok := r.db.s.projects[p.ID]; !ok {
		return common.ErrNotFound
	}
	p.UpdatedAt = r.db.now()
	stored := *p
	stored.Owner, stored.Collaborators = nil, nil
	r.db.s.projects[p.ID] = stored
	return nil
}

func (r *projectRepository) Delete(_ context.Context, id int64) error {
	defer r.db.lockWrite(nil)()

	if _, ok := r.db.s.projects[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.db.s.projects, id)
	for k, v := range r.db.s.requests {
		if v.ProjectID == id {
			delete(r.db.s.requests, k)
		}
	}
	for k, v := range r.db.s.collaborators {
		if v.ProjectID == id {
			delete(r.db.s.collaborators, k)
		}
	}
	for k, v := range r.db.s.milestones {
		if v.ProjectID == id {
			delete(r.db.s.milestones, k)
		}
	}
	for k, v := range r.db.s.comments {
		if v.ProjectID == id {
			delete(r.db.s.comments, k)
		}
	}
	return nil
}

func (r *projectRepository) ListPublic(_ context.Context, f model.ProjectFilter) ([]model.Project, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	search := strings.ToLower(f.Search)
	matched := r.collect(func(p model.Project) bool {
		if !p.IsPublic {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			return false
		}
		if f.Status != "" && p.Status != f.Status {
			return false
		}
		if f.Difficulty != "" && p.DifficultyLevel != f.Difficulty {
			return false
		}
		return true
	})

	total := len(matched)
	start := max(0, min(f.Offset, total))
	end := max(start, min(start+f.Limit, total))
	return matched[start:end], total, nil
}

func (r *projectRepository) ListByOwner(_ context.Context, ownerID int64) ([]model.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.collect(func(p model.Project) bool { return p.OwnerID == ownerID }), nil
}

// collect returns matching projects newest first.
func (r *projectRepository) collect(keep func(model.Project) bool) []model.Project {
	out := []model.Project{}
	for _, p := range r.db.s.projects {
		if keep(p) {
			p.Owner = r.db.summary(p.OwnerID)
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b model.Project) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out
}
