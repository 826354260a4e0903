package service

import (
	"context"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"errors"
	"fmt"
	"testing"
)

func TestProjectService_ListPublicPagination(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner")
	for i := 0; i < 5; i++ {
		f.project(t, owner.ID, fmt.Sprintf("Project %d", i))
	}
	hidden := false
	if _, err := f.svc.Projects.Create(context.Background(), owner.ID, CreateProjectRequest{
		Title: "Hidden", Description: "private", DifficultyLevel: model.DifficultyBeginner, IsPublic: &hidden,
	}); err != nil {
		t.Fatalf("create private: %v", err)
	}

	page, err := f.svc.Projects.ListPublic(context.Background(), ListProjectsQuery{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("ListPublic() error = %v", err)
	}
	if len(page.Projects) != 2 || page.Total != 5 || page.Pages != 3 || page.CurrentPage != 2 {
		t.Errorf("got %d items total=%d pages=%d current=%d", len(page.Projects), page.Total, page.Pages, page.CurrentPage)
	}
}

func TestProjectService_ListPublicFilters(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner")
	f.project(t, owner.ID, "Realtime Chat")
	f.project(t, owner.ID, "Static Blog")

	tests := []struct {
		name      string
		query     ListProjectsQuery
		wantTotal int
		wantErr   error
	}{
		{"search title case-insensitive", ListProjectsQuery{Search: "CHAT"}, 1, nil},
		{"search description", ListProjectsQuery{Search: "about static"}, 1, nil},
		{"difficulty match", ListProjectsQuery{Difficulty: "intermediate"}, 2, nil},
		{"difficulty miss", ListProjectsQuery{Difficulty: "advanced"}, 0, nil},
		{"status", ListProjectsQuery{Status: "ongoing"}, 2, nil},
		{"unknown status", ListProjectsQuery{Status: "archived"}, 0, common.ErrValidation},
		{"unknown difficulty", ListProjectsQuery{Difficulty: "hard"}, 0, common.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.svc.Projects.ListPublic(context.Background(), tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", page.Total, tt.wantTotal)
			}
		})
	}
}

func TestProjectService_CreateDefaults(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner")
	p := f.project(t, owner.ID, "Hello World API")

	if p.Status != model.StatusOngoing || p.MaxCollaborators != 5 || !p.IsPublic {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if p.Slug != "hello-world-api" {
		t.Errorf("Slug = %q", p.Slug)
	}

	_, err := f.svc.Projects.Create(context.Background(), owner.ID, CreateProjectRequest{Title: "No difficulty", Description: "d"})
	if !errors.Is(err, common.ErrValidation) {
		t.Errorf("expected ErrValidation without difficulty, got %v", err)
	}
}

func TestProjectService_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner")
	other := f.register(t, "other")
	p := f.project(t, owner.ID, "Mine")

	if _, err := f.svc.Projects.RequireOwner(ctx, p.ID, other.ID); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Projects.RequireOwner(ctx, 4242, owner.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	loaded, err := f.svc.Projects.RequireOwner(ctx, p.ID, owner.ID)
	if err != nil {
		t.Fatalf("RequireOwner() error = %v", err)
	}
	title := "Renamed Project"
	updated, err := f.svc.Projects.Update(ctx, loaded, model.ProjectPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Slug != "renamed-project" {
		t.Errorf("slug not regenerated: %q", updated.Slug)
	}

	empty := "  "
	if _, err := f.svc.Projects.Update(ctx, loaded, model.ProjectPatch{Title: &empty}); !errors.Is(err, common.ErrValidation) {
		t.Errorf("expected ErrValidation for blank title, got %v", err)
	}
}

func TestProjectService_PrivateReadableByID(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner")
	hidden := false
	p, err := f.svc.Projects.Create(context.Background(), owner.ID, CreateProjectRequest{
		Title: "Secret", Description: "d", DifficultyLevel: model.DifficultyBeginner, IsPublic: &hidden,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := f.svc.Projects.Get(context.Background(), p.ID)
	if err != nil || got.IsPublic {
		t.Errorf("Get() = %+v, %v", got, err)
	}
	if got.Owner == nil || got.Owner.Username != "owner" {
		t.Errorf("expected owner summary, got %+v", got.Owner)
	}
}
