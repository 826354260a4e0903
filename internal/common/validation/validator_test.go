package validation

import (
	"devpair/internal/common"
	"errors"
	"strings"
	"testing"
)

type sampleRequest struct {
	Username string `json:"username" validate:"required,max=5"`
	Email    string `json:"email" validate:"required,email"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		wantErr bool
		wantMsg string
	}{
		{"valid", sampleRequest{Username: "ana", Email: "ana@example.com"}, false, ""},
		{"missing username", sampleRequest{Email: "ana@example.com"}, true, "username is required"},
		{"bad email", sampleRequest{Username: "ana", Email: "nope"}, true, "email must be a valid email address"},
		{"too long", sampleRequest{Username: "abcdefg", Email: "a@b.co"}, true, "username must be at most 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, common.ErrValidation) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("expected the same validator instance")
	}
}
