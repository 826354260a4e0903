package middleware

import (
	"devpair/internal/common"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitByIP limits each client IP to requests per window. A non-positive
// limit disables limiting.
func RateLimitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			common.RespondWithError(w, http.StatusTooManyRequests, "Too many requests, slow down")
		}),
	)
}
