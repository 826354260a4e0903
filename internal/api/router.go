package api

import (
	"context"
	"devpair/internal/api/handler"
	"devpair/internal/api/middleware"
	"devpair/internal/app/service"
	"devpair/internal/common"
	"devpair/internal/common/security"
	"devpair/internal/platform/logger"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries the router settings that come from configuration.
type Options struct {
	AllowedOrigins []string
	// AuthRateLimit is the per-IP budget per minute for register and login.
	AuthRateLimit int
	// HealthCheck reports backing store reachability; nil means always healthy.
	HealthCheck func(ctx context.Context) error
}

func NewRouter(svc *service.Services, auth *middleware.Authenticator, opts Options) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Metrics)

	// Searches "Authorization: Bearer T" and leaves the verification result
	// in the context for Authenticator to act on.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", healthHandler(opts.HealthCheck))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		handler.NewAuthHandler(svc.Auth, svc.Users, auth, middleware.RateLimitByIP(opts.AuthRateLimit, time.Minute)).RegisterRoutes(api)
		handler.NewUserHandler(svc, auth).RegisterRoutes(api)
		handler.NewProjectHandler(svc.Projects, auth).RegisterRoutes(api)
		handler.NewPairingHandler(svc.Pairing, svc.Projects, auth).RegisterRoutes(api)
		handler.NewMilestoneHandler(svc.Milestones, auth).RegisterRoutes(api)
		handler.NewActivityHandler(svc, auth).RegisterRoutes(api)
	})

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				logger.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
				common.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
