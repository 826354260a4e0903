package service

import (
	"context"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"errors"
	"testing"
)

func TestPairingService_CreateNotifiesOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner")
	guest := f.register(t, "guest")
	p := f.project(t, owner.ID, "Compiler")

	pr, err := f.svc.Pairing.Create(ctx, guest.ID, p.ID, CreatePairingRequest{Message: "let me help"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if pr.Status != model.PairingPending || pr.Requester == nil || pr.Project.Title != "Compiler" {
		t.Errorf("unexpected request: %+v", pr)
	}

	notes, _ := f.svc.Notifications.ListMine(ctx, owner.ID)
	if len(notes) != 1 {
		t.Fatalf("owner notifications = %d, want 1", len(notes))
	}
	if notes[0].Title != "New Pairing Request" || notes[0].Message != "guest wants to collaborate on Compiler" ||
		notes[0].Type != model.NotificationPairingRequest {
		t.Errorf("unexpected notification: %+v", notes[0])
	}
}

func TestPairingService_DuplicateInAnyStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner")
	guest := f.register(t, "guest")
	p := f.project(t, owner.ID, "Compiler")

	pr, err := f.svc.Pairing.Create(ctx, guest.ID, p.ID, CreatePairingRequest{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Pairing.UpdateStatus(ctx, pr, UpdatePairingRequest{Status: model.PairingRejected}); err != nil {
		t.Fatalf("reject: %v", err)
	}

	_, err = f.svc.Pairing.Create(ctx, guest.ID, p.ID, CreatePairingRequest{})
	if !errors.Is(err, common.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	notes, _ := f.svc.Notifications.ListMine(ctx, owner.ID)
	if len(notes) != 1 {
		t.Errorf("failed request must not notify, owner has %d notifications", len(notes))
	}

	if _, err := f.svc.Pairing.Create(ctx, guest.ID, 9999, CreatePairingRequest{}); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing project, got %v", err)
	}
}

func TestPairingService_ApproveOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner")
	guest := f.register(t, "guest")
	p := f.project(t, owner.ID, "Compiler")

	pr, err := f.svc.Pairing.Create(ctx, guest.ID, p.ID, CreatePairingRequest{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	loaded, err := f.svc.Pairing.RequireProjectOwner(ctx, pr.ID, owner.ID)
	if err != nil {
		t.Fatalf("RequireProjectOwner() error = %v", err)
	}
	msg := "welcome"
	approved, err := f.svc.Pairing.UpdateStatus(ctx, loaded, UpdatePairingRequest{Status: model.PairingApproved, ResponseMessage: &msg})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != model.PairingApproved || approved.ResponseMessage != "welcome" {
		t.Errorf("unexpected request after approval: %+v", approved)
	}

	detail, _ := f.svc.Projects.Get(ctx, p.ID)
	if len(detail.Collaborators) != 1 || detail.Collaborators[0].UserID != guest.ID || detail.Collaborators[0].Role != model.RoleContributor {
		t.Fatalf("unexpected collaborators: %+v", detail.Collaborators)
	}
	notes, _ := f.svc.Notifications.ListMine(ctx, guest.ID)
	if len(notes) != 1 || notes[0].Message != "Your pairing request has been approved!" || notes[0].Type != model.NotificationPairingRequestUpdate {
		t.Fatalf("unexpected requester notifications: %+v", notes)
	}

	again, _ := f.svc.Pairing.RequireProjectOwner(ctx, pr.ID, owner.ID)
	_, err = f.svc.Pairing.UpdateStatus(ctx, again, UpdatePairingRequest{Status: model.PairingApproved})
	if !errors.Is(err, common.ErrDuplicateCollaborator) {
		t.Fatalf("expected ErrDuplicateCollaborator, got %v", err)
	}

	notes, _ = f.svc.Notifications.ListMine(ctx, guest.ID)
	if len(notes) != 1 {
		t.Errorf("rolled back approval left %d notifications", len(notes))
	}
	reloaded, _ := f.svc.Pairing.RequireProjectOwner(ctx, pr.ID, owner.ID)
	if reloaded.ResponseMessage != "welcome" {
		t.Errorf("rolled back approval changed response_message to %q", reloaded.ResponseMessage)
	}
}

func TestPairingService_UpdateAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner")
	guest := f.register(t, "guest")
	p := f.project(t, owner.ID, "Compiler")
	pr, _ := f.svc.Pairing.Create(ctx, guest.ID, p.ID, CreatePairingRequest{})

	if _, err := f.svc.Pairing.RequireProjectOwner(ctx, pr.ID, guest.ID); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("expected ErrForbidden for requester, got %v", err)
	}
	if _, err := f.svc.Pairing.RequireProjectOwner(ctx, 9999, owner.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPairingService_StatusMessages(t *testing.T) {
	tests := []struct {
		status model.PairingStatus
		want   string
	}{
		{model.PairingApproved, "Your pairing request has been approved!"},
		{model.PairingRejected, "Your pairing request has been rejected."},
		{model.PairingPending, "Your pairing request status has been updated."},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := statusMessage(tt.status); got != tt.want {
				t.Errorf("statusMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPairingService_ListForProjectPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner")
	p := f.project(t, owner.ID, "Compiler")
	for _, name := range []string{"a1", "a2", "a3"} {
		u := f.register(t, name)
		if _, err := f.svc.Pairing.Create(ctx, u.ID, p.ID, CreatePairingRequest{}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := f.svc.Pairing.ListForProject(ctx, p.ID, 1, 2)
	if err != nil {
		t.Fatalf("ListForProject() error = %v", err)
	}
	if len(page.Requests) != 2 || page.Total != 3 || page.Pages != 2 {
		t.Errorf("got %d items total=%d pages=%d", len(page.Requests), page.Total, page.Pages)
	}
	if page.Requests[0].Requester.Username != "a3" {
		t.Errorf("expected newest first, got %s", page.Requests[0].Requester.Username)
	}
}
