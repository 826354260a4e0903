package handler

import (
	"devpair/internal/api/middleware"
	"devpair/internal/app/service"
	"devpair/internal/common"
	"devpair/internal/domain/model"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	auth           *middleware.Authenticator
}

func NewProjectHandler(ps *service.ProjectService, auth *middleware.Authenticator) *ProjectHandler {
	return &ProjectHandler{projectService: ps, auth: auth}
}

func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Get("/projects", h.listProjects)
	r.Get("/projects/{id}", h.getProject)

	r.Group(func(authed chi.Router) {
		authed.Use(h.auth.RequireAccess)
		authed.Post("/projects", h.createProject)
		authed.Put("/projects/{id}", h.updateProject)
		authed.Delete("/projects/{id}", h.deleteProject)
	})
}

func (h *ProjectHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.projectService.ListPublic(r.Context(), service.ListProjectsQuery{
		Page:       parsePositiveInt(q.Get("page"), service.DefaultPage),
		PerPage:    parsePositiveInt(q.Get("per_page"), service.DefaultPerPage),
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Difficulty: q.Get("difficulty"),
	})
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, page)
}

func (h *ProjectHandler) createProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req service.CreateProjectRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	project, err := h.projectService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	project, err := h.projectService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, project)
}

// updateProject checks ownership before reading the body so non-owners get
// 403 whatever they send.
func (h *ProjectHandler) updateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	project, err := h.projectService.RequireOwner(r.Context(), id, userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}

	var patch model.ProjectPatch
	if err := common.DecodeJSON(r, &patch); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	updated, err := h.projectService.Update(r.Context(), project, patch)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *ProjectHandler) deleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	project, err := h.projectService.RequireOwner(r.Context(), id, userID)
	if err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	if err := h.projectService.Delete(r.Context(), project); err != nil {
		common.RespondWithServiceError(r.Context(), w, err)
		return
	}
	respondNoContent(w)
}
