package handler

import (
	"devpair/internal/api/middleware"
	"devpair/internal/app/service"
	"devpair/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type PairingHandler struct {
	pairingService *service.PairingService
	projectService *service.ProjectService
	auth           *middleware.Authenticator
}

func NewPairingHandler(ps *service.PairingService, projects *service.ProjectService, auth *middleware.Authenticator) *PairingHandler {
	return &PairingHandler{pairingService: ps, projectService: projects, auth: auth}
}

func (h *PairingHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(authed chi.Router) {
		authed.Use(h.auth.RequireAccess)
		authed.Get("/projects/{id}/pairing-requests", h.listForProject)
		authed.Post("/projects/{id}/pairing-requests", h.createRequest)
		authed.Put("/pairing-requests/{id}", h.updateRequest)
	})
}

func (h *PairingHandler) listForProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	if _, err := h.projectService.RequireOwner(r.Context(), projectID, userID); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}

	q := r.URL.Query()
	page, err := h.pairingService.ListForProject(r.Context(), projectID,
		parsePositiveInt(q.Get("page"), service.DefaultPage),
		parsePositiveInt(q.Get("per_page"), service.DefaultPerPage),
	)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, page)
}

func (h *PairingHandler) createRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	var req service.CreatePairingRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	pr, err := h.pairingService.Create(r.Context(), userID, projectID, req)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, pr)
}

func (h *PairingHandler) updateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	pr, err := h.pairingService.RequireProjectOwner(r.Context(), id, userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}

	var req service.UpdatePairingRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	updated, err := h.pairingService.UpdateStatus(r.Context(), pr, req)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}
