package handler

import (
	"devpair/internal/api/middleware"
	"devpair/internal/app/service"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type MilestoneHandler struct {
	milestoneService *service.MilestoneService
	auth             *middleware.Authenticator
}

func NewMilestoneHandler(ms *service.MilestoneService, auth *middleware.Authenticator) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: ms, auth: auth}
}

func (h *MilestoneHandler) RegisterRoutes(r chi.Router) {
	r.Get("/projects/{id}/milestones", h.listMilestones)

	r.Group(func(authed chi.Router) {
		authed.Use(h.auth.RequireAccess)
		authed.Post("/projects/{id}/milestones", h.createMilestone)
		authed.Put("/milestones/{id}", h.updateMilestone)
		authed.Delete("/milestones/{id}", h.deleteMilestone)
	})
}

func (h *MilestoneHandler) listMilestones(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	milestones, err := h.milestoneService.ListForProject(r.Context(), projectID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, milestones)
}

func (h *MilestoneHandler) createMilestone(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	var req service.CreateMilestoneRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	m, err := h.milestoneService.Create(r.Context(), userID, projectID, req)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, m)
}

func (h *MilestoneHandler) updateMilestone(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	m, err := h.milestoneService.RequireEditor(r.Context(), id, userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}

	var patch model.MilestonePatch
	if err := common.DecodeJSON(r, &patch); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	updated, err := h.milestoneService.Update(r.Context(), m, patch)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *MilestoneHandler) deleteMilestone(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	m, err := h.milestoneService.RequireEditor(r.Context(), id, userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	if err := h.milestoneService.Delete(r.Context(), m); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	respondNoContent(w)
}
