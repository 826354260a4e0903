package model

import "testing"

func TestProjectPatch_Apply(t *testing.T) {
	p := &Project{Title: "Old", Status: StatusOngoing, MaxCollaborators: 5}
	title := "New"
	status := StatusPaused

	changed := (&ProjectPatch{Title: &title, Status: &status}).Apply(p)
	if !changed {
		t.Error("expected title change to be reported")
	}
	if p.Title != "New" || p.Status != StatusPaused || p.MaxCollaborators != 5 {
		t.Errorf("unexpected project after patch: %+v", p)
	}

	if (&ProjectPatch{Title: &title}).Apply(p) {
		t.Error("same title must not be reported as a change")
	}
}

func TestUserProfilePatch_Apply(t *testing.T) {
	u := &User{FullName: "Ada", IsAvailable: true}
	bio := "compilers"
	off := false
	(&UserProfilePatch{Bio: &bio, IsAvailable: &off}).Apply(u)
	if u.Bio != "compilers" || u.IsAvailable || u.FullName != "Ada" {
		t.Errorf("unexpected user after patch: %+v", u)
	}
}
