//go:build integration

package repository

import (
	"context"
	"database/sql"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"devpair/internal/platform/database"
	"errors"
	"fmt"
	"os/exec"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// startPostgres boots a throwaway PostgreSQL and returns a migrated pool.
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	skipIfNoDocker(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "devpair",
			"POSTGRES_PASSWORD": "devpair",
			"POSTGRES_DB":       "devpair",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(90 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=devpair password=devpair dbname=devpair sslmode=disable", host, port.Port())
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestPgStore_Integration(t *testing.T) {
	db := startPostgres(t)
	store := NewPgStore(db)
	ctx := context.Background()

	owner := &model.User{Username: "owner", Email: "owner@example.com", FullName: "Owner", PasswordHash: "x", ExperienceLevel: model.ExperienceExpert, IsAvailable: true}
	guest := &model.User{Username: "guest", Email: "guest@example.com", FullName: "Guest", PasswordHash: "x", ExperienceLevel: model.ExperienceBeginner, IsAvailable: true}
	for _, u := range []*model.User{owner, guest} {
		if err := store.Users.Create(ctx, u); err != nil {
			t.Fatalf("create user %s: %v", u.Username, err)
		}
	}

	t.Run("duplicate identifier", func(t *testing.T) {
		dup := &model.User{Username: "owner", Email: "other@example.com", FullName: "Dup", PasswordHash: "x", ExperienceLevel: model.ExperienceBeginner}
		err := store.Users.Create(ctx, dup)
		if !errors.Is(err, common.ErrDuplicateIdentifier) {
			t.Fatalf("expected ErrDuplicateIdentifier, got %v", err)
		}
		if _, err := store.Users.FindByUsername(ctx, "owner"); err != nil {
			t.Fatalf("first user no longer readable: %v", err)
		}
	})

	var projects []*model.Project
	t.Run("public listing pagination", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			p := &model.Project{
				Title: fmt.Sprintf("Project %d", i), Slug: fmt.Sprintf("project-%d", i), Description: "desc",
				DifficultyLevel: model.DifficultyBeginner, Status: model.StatusOngoing,
				IsPublic: true, MaxCollaborators: 5, OwnerID: owner.ID,
			}
			if err := store.Projects.Create(ctx, p); err != nil {
				t.Fatalf("create project: %v", err)
			}
			projects = append(projects, p)
		}
		page, total, err := store.Projects.ListPublic(ctx, model.ProjectFilter{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("ListPublic: %v", err)
		}
		if len(page) != 2 || total != 5 {
			t.Errorf("got %d items total=%d, want 2/5", len(page), total)
		}
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		_, total, err := store.Projects.ListPublic(ctx, model.ProjectFilter{Search: "%", Limit: 10})
		if err != nil {
			t.Fatalf("ListPublic: %v", err)
		}
		if total != 0 {
			t.Errorf("literal %% matched %d projects", total)
		}
	})

	t.Run("collaborator uniqueness rolls back", func(t *testing.T) {
		tx := database.NewTransactor(db)
		target := projects[0]
		c := &model.Collaborator{Role: model.RoleContributor, UserID: guest.ID, ProjectID: target.ID}
		if err := store.Collaborators.Create(ctx, nil, c); err != nil {
			t.Fatalf("first collaborator: %v", err)
		}
		err := tx.WithinTx(ctx, func(sqlTx *sql.Tx) error {
			n := &model.Notification{Title: "t", Message: "m", Type: model.NotificationPairingRequestUpdate, UserID: guest.ID}
			if err := store.Notifications.Create(ctx, sqlTx, n); err != nil {
				return err
			}
			return store.Collaborators.Create(ctx, sqlTx, &model.Collaborator{Role: model.RoleContributor, UserID: guest.ID, ProjectID: target.ID})
		})
		if !errors.Is(err, common.ErrDuplicateCollaborator) {
			t.Fatalf("expected ErrDuplicateCollaborator, got %v", err)
		}
		notes, _ := store.Notifications.ListByUser(ctx, guest.ID)
		if len(notes) != 0 {
			t.Errorf("notification survived rollback: %+v", notes)
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		target := projects[0]
		if err := store.Milestones.Create(ctx, &model.Milestone{Title: "m", ProjectID: target.ID}); err != nil {
			t.Fatalf("milestone: %v", err)
		}
		if err := store.Comments.Create(ctx, &model.Comment{Content: "c", AuthorID: guest.ID, ProjectID: target.ID}); err != nil {
			t.Fatalf("comment: %v", err)
		}
		if err := store.PairingRequests.Create(ctx, nil, &model.PairingRequest{Status: model.PairingPending, RequesterID: guest.ID, ProjectID: target.ID}); err != nil {
			t.Fatalf("request: %v", err)
		}

		if err := store.Projects.Delete(ctx, target.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		for _, table := range []string{"milestones", "comments", "pairing_requests", "project_collaborators"} {
			var n int
			if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE project_id = $1", target.ID).Scan(&n); err != nil {
				t.Fatalf("count %s: %v", table, err)
			}
			if n != 0 {
				t.Errorf("%s still has %d rows", table, n)
			}
		}
	})

	t.Run("dashboard counts", func(t *testing.T) {
		stats, err := store.Dashboard.StatsForUser(ctx, owner.ID)
		if err != nil {
			t.Fatalf("StatsForUser: %v", err)
		}
		if stats.OwnedProjects != 4 {
			t.Errorf("OwnedProjects = %d, want 4", stats.OwnedProjects)
		}
	})
}
