package http

import (
	"net/http"

	"github.com/lorrc/owner-dashboard/internal/adapters/primary/http/middleware"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
	"github.com/lorrc/owner-dashboard/internal/infrastructure/logging"
)

// ProjectHandler accepts the create, rename and delete project forms.
type ProjectHandler struct {
	projectService ports.ProjectService
	cache          ports.ListingCache
}

func NewProjectHandler(projectService ports.ProjectService, cache ports.ListingCache) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, cache: cache}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		middleware.RedirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		redirectWithParam(w, r, projectErrorParam, "Could not read the submitted form.")
		return
	}

	if _, err := h.projectService.CreateProject(r.Context(), r.PostFormValue("title")); err != nil {
		redirectError(w, r, projectErrorParam, err, "Could not create the project. Please try again.")
		return
	}

	h.invalidateListing(r)
	redirectSuccess(w, r, projectSuccessParam, "Project created.")
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		middleware.RedirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		redirectWithParam(w, r, projectErrorParam, "Could not read the submitted form.")
		return
	}

	params := ports.UpdateProjectParams{
		ID:    r.PostFormValue("id"),
		Title: r.PostFormValue("title"),
	}

	if _, err := h.projectService.UpdateProject(r.Context(), params); err != nil {
		redirectError(w, r, projectErrorParam, err, "Could not update the project. Please try again.")
		return
	}

	h.invalidateListing(r)
	redirectSuccess(w, r, projectSuccessParam, "Project updated.")
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		middleware.RedirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		redirectWithParam(w, r, projectErrorParam, "Could not read the submitted form.")
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), r.PostFormValue("id")); err != nil {
		redirectError(w, r, projectErrorParam, err, "Could not delete the project. Please try again.")
		return
	}

	h.invalidateListing(r)
	redirectSuccess(w, r, projectSuccessParam, "Project deleted.")
}

func (h *ProjectHandler) invalidateListing(r *http.Request) {
	if err := h.cache.Invalidate(r.Context()); err != nil {
		logging.LoggerFromContext(r.Context()).Warn("listing cache invalidation failed", "error", err.Error())
	}
}
