package middleware

import (
	"context"
	"devpair/internal/common"
	"devpair/internal/common/security"
	"devpair/internal/platform/logger"
	"devpair/internal/platform/metrics"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey      contextKey = "userID"
	TokenJTICtxKey    contextKey = "tokenJTI"
	TokenExpiryCtxKey contextKey = "tokenExpiry"
)

// Authenticator checks the token jwtauth.Verifier placed in the context:
// signature and expiry, the type claim, and the revocation store.
type Authenticator struct {
	revocations security.RevocationStore
}

func NewAuthenticator(revocations security.RevocationStore) *Authenticator {
	return &Authenticator{revocations: revocations}
}

// RequireAccess admits requests carrying a live access token.
func (a *Authenticator) RequireAccess(next http.Handler) http.Handler {
	return a.require(security.TokenTypeAccess, next)
}

// RequireRefresh admits requests carrying a live refresh token.
func (a *Authenticator) RequireRefresh(next http.Handler) http.Handler {
	return a.require(security.TokenTypeRefresh, next)
}

func (a *Authenticator) require(tokenType string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			reason := "missing_token"
			message := "Authorization token required"
			if err != nil && !errors.Is(err, jwtauth.ErrNoTokenFound) {
				reason = "invalid_token"
				message = "Invalid or expired token"
			}
			metrics.IncAuthFailure(reason)
			common.RespondWithError(w, http.StatusUnauthorized, message)
			return
		}

		gotType, err := security.GetTokenTypeFromClaims(claims)
		if err != nil || gotType != tokenType {
			metrics.IncAuthFailure("wrong_token_type")
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token type")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			metrics.IncAuthFailure("invalid_claims")
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		jti, err := security.GetJTIFromClaims(claims)
		if err != nil {
			metrics.IncAuthFailure("invalid_claims")
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		expiresAt, err := security.GetExpiryFromClaims(claims)
		if err != nil {
			metrics.IncAuthFailure("invalid_claims")
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		revoked, err := a.revocations.IsRevoked(r.Context(), jti)
		if err != nil {
			logger.Ctx(r.Context()).Error().Err(err).Msg("revocation lookup failed")
			common.RespondWithError(w, http.StatusInternalServerError, common.ErrInternalServer.Error())
			return
		}
		if revoked {
			metrics.IncAuthFailure("revoked")
			common.RespondWithError(w, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, TokenJTICtxKey, jti)
		ctx = context.WithValue(ctx, TokenExpiryCtxKey, expiresAt)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetTokenFromContext returns the jti and expiry of the authenticated token.
func GetTokenFromContext(ctx context.Context) (string, time.Time, bool) {
	jti, ok := ctx.Value(TokenJTICtxKey).(string)
	if !ok {
		return "", time.Time{}, false
	}
	expiresAt, ok := ctx.Value(TokenExpiryCtxKey).(time.Time)
	return jti, expiresAt, ok
}
