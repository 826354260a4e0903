package handler

import (
	"devpair/internal/api/middleware"
	"devpair/internal/app/service"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users         *service.UserService
	projects      *service.ProjectService
	pairing       *service.PairingService
	notifications *service.NotificationService
	auth          *middleware.Authenticator
}

func NewUserHandler(svc *service.Services, auth *middleware.Authenticator) *UserHandler {
	return &UserHandler{
		users:         svc.Users,
		projects:      svc.Projects,
		pairing:       svc.Pairing,
		notifications: svc.Notifications,
		auth:          auth,
	}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users/{id}", h.getUser)

	r.Group(func(me chi.Router) {
		me.Use(h.auth.RequireAccess)
		me.Put("/users/me", h.updateProfile)
		me.Get("/users/me/projects", h.myProjects)
		me.Get("/users/me/pairing-requests", h.myPairingRequests)
		me.Get("/users/me/notifications", h.myNotifications)
	})
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var patch model.UserProfilePatch
	if err := common.DecodeJSON(r, &patch); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	user, err := h.users.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) myProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	projects, err := h.projects.ListMine(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, projects)
}

func (h *UserHandler) myPairingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	requests, err := h.pairing.ListMine(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *UserHandler) myNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	notifications, err := h.notifications.ListMine(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, notifications)
}
