package handler

import (
	"devpair/internal/api/middleware"
	"devpair/internal/common"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.Validationf("invalid %s %q", name, raw)
	}
	return id, nil
}

func parsePositiveInt(s string, defaultVal int) int {
	if val, err := strconv.Atoi(s); err == nil && val > 0 {
		return val
	}
	return defaultVal
}

// currentUserID answers 401 itself when the context carries no identity.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return 0, false
	}
	return userID, true
}

func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
