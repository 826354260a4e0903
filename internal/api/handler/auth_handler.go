package handler

import (
	"devpair/internal/api/middleware"
	"devpair/internal/app/service"
	"devpair/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
	auth        *middleware.Authenticator
	rateLimit   func(http.Handler) http.Handler
}

func NewAuthHandler(
	authService *service.AuthService,
	userService *service.UserService,
	auth *middleware.Authenticator,
	rateLimit func(http.Handler) http.Handler,
) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, auth: auth, rateLimit: rateLimit}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(public chi.Router) {
		public.Use(h.rateLimit)
		public.Post("/auth/register", h.register)
		public.Post("/auth/login", h.login)
	})
	r.With(h.auth.RequireAccess).Post("/auth/logout", h.logout)
	r.With(h.auth.RequireRefresh).Post("/auth/refresh", h.refresh)
	r.With(h.auth.RequireAccess).Get("/auth/me", h.me)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrInvalidCredentials.Error())
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	jti, expiresAt, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing token context")
		return
	}
	if err := h.authService.Logout(r.Context(), jti, expiresAt); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Successfully logged out"})
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	resp, err := h.authService.Refresh(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
