package memory

import (
	"context"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"fmt"
)

type userRepository struct {
	db *DB
}

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	defer r.db.lockWrite(nil)()

	for _, existing := range r.db.s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return fmt.Errorf("memory.userRepository.Create: %w", common.ErrDuplicateIdentifier)
		}
	}
	now := r.db.now()
	user.ID = r.db.id()
	user.CreatedAt, user.UpdatedAt = now, now
	r.db.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *userRepository) UpdateProfile(_ context.Context, user *model.User) error {
	defer r.db.lockWrite(nil)()

	if _, ok := r.db.s.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	user.UpdatedAt = r.db.now()
	r.db.s.users[user.ID] = *user
	return nil
}
