package service

import (
	"context"
	"devpair/internal/common/security"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository/memory"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	security.InitJWT([]byte("service-test-secret"), 15*time.Minute, time.Hour)
	os.Exit(m.Run())
}

type fixture struct {
	svc         *Services
	revocations *security.MemoryRevocationStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	revocations := security.NewMemoryRevocationStore()
	store := memory.NewStore(memory.NewDB())
	return &fixture{svc: New(store, revocations, bcrypt.MinCost), revocations: revocations}
}

func (f *fixture) register(t *testing.T, username string) *model.User {
	t.Helper()
	resp, err := f.svc.Auth.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		FullName: username + " Example",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return resp.User
}

func (f *fixture) project(t *testing.T, ownerID int64, title string) *model.Project {
	t.Helper()
	p, err := f.svc.Projects.Create(context.Background(), ownerID, CreateProjectRequest{
		Title:           title,
		Description:     "A project about " + title,
		DifficultyLevel: model.DifficultyIntermediate,
	})
	if err != nil {
		t.Fatalf("create project %s: %v", title, err)
	}
	return p
}
