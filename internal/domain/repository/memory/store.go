// Package memory implements the repository interfaces over process memory.
// It enforces the same uniqueness and cascade rules as the SQL schema and is
// used by tests and by STORAGE_BACKEND=memory.
package memory

import (
	"context"
	"database/sql"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository"
	"maps"
	"sync"
	"time"
)

type state struct {
	users         map[int64]model.User
	projects      map[int64]model.Project
	requests      map[int64]model.PairingRequest
	collaborators map[int64]model.Collaborator
	milestones    map[int64]model.Milestone
	notifications map[int64]model.Notification
	comments      map[int64]model.Comment
	nextID        int64
}

func newState() *state {
	return &state{
		users:         map[int64]model.User{},
		projects:      map[int64]model.Project{},
		requests:      map[int64]model.PairingRequest{},
		collaborators: map[int64]model.Collaborator{},
		milestones:    map[int64]model.Milestone{},
		notifications: map[int64]model.Notification{},
		comments:      map[int64]model.Comment{},
	}
}

func (s *state) clone() *state {
	return &state{
		users:         maps.Clone(s.users),
		projects:      maps.Clone(s.projects),
		requests:      maps.Clone(s.requests),
		collaborators: maps.Clone(s.collaborators),
		milestones:    maps.Clone(s.milestones),
		notifications: maps.Clone(s.notifications),
		comments:      maps.Clone(s.comments),
		nextID:        s.nextID,
	}
}

// DB is the shared in-memory database behind every repository.
type DB struct {
	mu sync.Mutex
	// txMu serializes writers. An open transaction holds it until commit or
	// rollback; writes made through its handle run inside it.
	txMu   sync.Mutex
	active *sql.Tx
	s      *state
	now    func() time.Time
}

func NewDB() *DB {
	return &DB{s: newState(), now: func() time.Time { return time.Now().UTC() }}
}

// SetClock replaces the time source used for timestamps.
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

func (db *DB) id() int64 {
	db.s.nextID++
	return db.s.nextID
}

// WithinTx serializes transactions and restores the state captured at
// begin when fn fails. fn receives an opaque handle that repositories only
// compare against the open transaction; none of its methods may be called.
// Writers outside the transaction wait on txMu, so a rollback never discards
// their changes.
func (db *DB) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	tx := new(sql.Tx)
	db.mu.Lock()
	snapshot := db.s.clone()
	db.active = tx
	db.mu.Unlock()

	err := fn(tx)

	db.mu.Lock()
	if err != nil {
		db.s = snapshot
	}
	db.active = nil
	db.mu.Unlock()
	return err
}

// lockWrite takes the locks a write needs and returns their release. A write
// made with the open transaction's handle is already serialized by it.
func (db *DB) lockWrite(tx *sql.Tx) func() {
	db.mu.Lock()
	inTx := tx != nil && tx == db.active
	db.mu.Unlock()

	if !inTx {
		db.txMu.Lock()
	}
	db.mu.Lock()
	return func() {
		db.mu.Unlock()
		if !inTx {
			db.txMu.Unlock()
		}
	}
}

// NewStore wires every in-memory repository to db.
func NewStore(db *DB) *repository.Store {
	return &repository.Store{
		Users:           &userRepository{db: db},
		Projects:        &projectRepository{db: db},
		PairingRequests: &pairingRequestRepository{db: db},
		Collaborators:   &collaboratorRepository{db: db},
		Milestones:      &milestoneRepository{db: db},
		Notifications:   &notificationRepository{db: db},
		Comments:        &commentRepository{db: db},
		Dashboard:       &dashboardRepository{db: db},
		Tx:              db,
	}
}

func (db *DB) summary(userID int64) *model.UserSummary {
	u, ok := db.s.users[userID]
	if !ok {
		return nil
	}
	return u.Summary()
}
