package middleware

import (
	"context"
	"devpair/internal/common/security"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

func TestMain(m *testing.M) {
	security.InitJWT([]byte("middleware-test-secret"), 15*time.Minute, time.Hour)
	os.Exit(m.Run())
}

func protected(auth *Authenticator, tokenType string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		jti, exp, tokOK := GetTokenFromContext(r.Context())
		if !ok || !tokOK || jti == "" || exp.IsZero() {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		fmt.Fprintf(w, "%d", userID)
	})
	guard := auth.RequireAccess
	if tokenType == security.TokenTypeRefresh {
		guard = auth.RequireRefresh
	}
	return jwtauth.Verifier(security.TokenAuth)(guard(next))
}

func call(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator(t *testing.T) {
	access, err := security.GenerateAccessToken(7)
	if err != nil {
		t.Fatal(err)
	}
	refresh, err := security.GenerateRefreshToken(7)
	if err != nil {
		t.Fatal(err)
	}
	_, expired, err := security.TokenAuth.Encode(map[string]interface{}{
		"sub":  "7",
		"jti":  "expired-jti",
		"type": security.TokenTypeAccess,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}
	_, noSubject, err := security.TokenAuth.Encode(map[string]interface{}{
		"jti":  "no-sub",
		"type": security.TokenTypeAccess,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}

	auth := NewAuthenticator(security.NewMemoryRevocationStore())

	tests := []struct {
		name      string
		tokenType string
		token     string
		wantCode  int
		wantError string
	}{
		{"access token on access route", security.TokenTypeAccess, access, http.StatusOK, ""},
		{"refresh token on refresh route", security.TokenTypeRefresh, refresh, http.StatusOK, ""},
		{"missing token", security.TokenTypeAccess, "", http.StatusUnauthorized, "Authorization token required"},
		{"garbage token", security.TokenTypeAccess, "abc.def.ghi", http.StatusUnauthorized, "Invalid or expired token"},
		{"expired token", security.TokenTypeAccess, expired, http.StatusUnauthorized, "Invalid or expired token"},
		{"refresh token on access route", security.TokenTypeAccess, refresh, http.StatusUnauthorized, "Invalid token type"},
		{"access token on refresh route", security.TokenTypeRefresh, access, http.StatusUnauthorized, "Invalid token type"},
		{"token without subject", security.TokenTypeAccess, noSubject, http.StatusUnauthorized, "Invalid token claims"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(protected(auth, tt.tokenType), tt.token)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantError != "" && !strings.Contains(rec.Body.String(), tt.wantError) {
				t.Errorf("body = %s, want error %q", rec.Body.String(), tt.wantError)
			}
			if tt.wantCode == http.StatusOK && rec.Body.String() != "7" {
				t.Errorf("user id = %s, want 7", rec.Body.String())
			}
		})
	}
}

func TestAuthenticator_Revoked(t *testing.T) {
	revocations := security.NewMemoryRevocationStore()
	auth := NewAuthenticator(revocations)
	h := protected(auth, security.TokenTypeAccess)

	token, err := security.GenerateAccessToken(3)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := security.TokenAuth.Decode(token)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := parsed.AsMap(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	jti, err := security.GetJTIFromClaims(claims)
	if err != nil {
		t.Fatal(err)
	}

	if rec := call(h, token); rec.Code != http.StatusOK {
		t.Fatalf("before revoke: status = %d", rec.Code)
	}
	if err := revocations.Revoke(context.Background(), jti, time.Minute); err != nil {
		t.Fatal(err)
	}
	rec := call(h, token)
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "Token has been revoked") {
		t.Errorf("after revoke: %d %s", rec.Code, rec.Body.String())
	}
}

type failingRevocations struct{}

func (failingRevocations) Revoke(context.Context, string, time.Duration) error { return nil }
func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, fmt.Errorf("redis unavailable")
}

func TestAuthenticator_RevocationLookupFails(t *testing.T) {
	token, err := security.GenerateAccessToken(1)
	if err != nil {
		t.Fatal(err)
	}
	rec := call(protected(NewAuthenticator(failingRevocations{}), security.TokenTypeAccess), token)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRateLimitByIP_Disabled(t *testing.T) {
	h := RateLimitByIP(0, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 50; i++ {
		if rec := call(h, ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d limited with status %d", i, rec.Code)
		}
	}
}

func TestRateLimitByIP(t *testing.T) {
	h := RateLimitByIP(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	if rec := call(h, ""); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	rec := call(h, "")
	if rec.Code != http.StatusTooManyRequests || !strings.Contains(rec.Body.String(), "Too many requests") {
		t.Errorf("second request: %d %s", rec.Code, rec.Body.String())
	}
}
