package http

import (
	"html/template"
	"net/http"

	"github.com/lorrc/owner-dashboard/internal/adapters/primary/http/middleware"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
	"github.com/lorrc/owner-dashboard/internal/infrastructure/logging"
)

// DashboardHandler renders the main page: the signed-in identity, any
// outcome banners carried in the query string, and the cached listing of
// users and projects.
type DashboardHandler struct {
	userService    ports.UserService
	projectService ports.ProjectService
	cache          ports.ListingCache
	renderer       *Renderer
}

func NewDashboardHandler(userService ports.UserService, projectService ports.ProjectService, cache ports.ListingCache, renderer *Renderer) *DashboardHandler {
	return &DashboardHandler{
		userService:    userService,
		projectService: projectService,
		cache:          cache,
		renderer:       renderer,
	}
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	logger := logging.LoggerFromContext(r.Context())

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.RedirectToLogin(w, r)
		return
	}

	listing, err := h.listingHTML(r)
	if err != nil {
		logger.Error("building listing", "error", err.Error())
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	data := dashboardData{
		Identity:       identity,
		Listing:        template.HTML(listing),
		UserSuccess:    query.Get(userSuccessParam),
		UserError:      query.Get(userErrorParam),
		ProjectSuccess: query.Get(projectSuccessParam),
		ProjectError:   query.Get(projectErrorParam),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderDashboard(w, data); err != nil {
		logger.Error("rendering dashboard", "error", err.Error())
	}
}

// listingHTML returns the rendered users-and-projects section, serving from
// the cache when possible. Cache failures are logged and treated as misses
// so the page always renders.
func (h *DashboardHandler) listingHTML(r *http.Request) (string, error) {
	ctx := r.Context()
	logger := logging.LoggerFromContext(ctx)

	cached, hit, err := h.cache.Get(ctx)
	if err != nil {
		logger.Warn("listing cache read failed", "error", err.Error())
	}
	if hit {
		return cached, nil
	}

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	projects, err := h.projectService.ListProjects(ctx)
	if err != nil {
		return "", err
	}

	listing, err := h.renderer.RenderListing(users, projects)
	if err != nil {
		return "", err
	}

	if err := h.cache.Set(ctx, listing); err != nil {
		logger.Warn("listing cache write failed", "error", err.Error())
	}
	return listing, nil
}
