package handler

import (
	"devpair/internal/api/middleware"
	"devpair/internal/app/service"
	"devpair/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ActivityHandler serves comments, notifications and the dashboard.
type ActivityHandler struct {
	comments      *service.CommentService
	notifications *service.NotificationService
	dashboard     *service.DashboardService
	auth          *middleware.Authenticator
}

func NewActivityHandler(svc *service.Services, auth *middleware.Authenticator) *ActivityHandler {
	return &ActivityHandler{
		comments:      svc.Comments,
		notifications: svc.Notifications,
		dashboard:     svc.Dashboard,
		auth:          auth,
	}
}

func (h *ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/projects/{id}/comments", h.listComments)

	r.Group(func(authed chi.Router) {
		authed.Use(h.auth.RequireAccess)
		authed.Post("/projects/{id}/comments", h.createComment)
		authed.Put("/notifications/{id}/read", h.markNotificationRead)
		authed.Get("/dashboard/stats", h.dashboardStats)
	})
}

func (h *ActivityHandler) listComments(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	comments, err := h.comments.ListForProject(r.Context(), projectID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comments)
}

func (h *ActivityHandler) createComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	var req service.CreateCommentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	comment, err := h.comments.Create(r.Context(), userID, projectID, req)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, comment)
}

func (h *ActivityHandler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	n, err := h.notifications.MarkRead(r.Context(), id, userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, n)
}

func (h *ActivityHandler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	stats, err := h.dashboard.Stats(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
