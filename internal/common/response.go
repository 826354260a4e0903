package common

import (
	"context"
	"devpair/internal/platform/logger"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithServiceError maps err to a status. Server-side failures are
// logged and answered with a generic message so internals never leak.
func RespondWithServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)
	if code >= http.StatusInternalServerError {
		logger.Ctx(ctx).Error().Err(err).Msg("request failed")
		RespondWithError(w, code, ErrInternalServer.Error())
		return
	}
	RespondWithError(w, code, PublicMessage(err))
}

// PublicMessage returns the client-facing text for a 4xx error. Validation
// errors keep their detail; every other sentinel answers with its own text so
// wrapping context stays server-side.
func PublicMessage(err error) string {
	if errors.Is(err, ErrValidation) {
		return strings.TrimSuffix(err.Error(), ": "+ErrValidation.Error())
	}
	for _, sentinel := range publicSentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	if PgConstraint(err) != "" {
		return "request violates a data constraint"
	}
	return err.Error()
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// DecodeJSON reads a JSON request body into dst. An empty body leaves dst untouched.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return Validationf("invalid request payload: %v", err)
	}
	return nil
}
