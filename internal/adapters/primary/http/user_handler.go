package http

import (
	"net/http"

	"github.com/lorrc/owner-dashboard/internal/adapters/primary/http/middleware"
	"github.com/lorrc/owner-dashboard/internal/core/domain"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
	"github.com/lorrc/owner-dashboard/internal/infrastructure/logging"
)

// UserHandler accepts the create-user form.
type UserHandler struct {
	userService ports.UserService
	cache       ports.ListingCache
}

func NewUserHandler(userService ports.UserService, cache ports.ListingCache) *UserHandler {
	return &UserHandler{userService: userService, cache: cache}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		middleware.RedirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		redirectWithParam(w, r, userErrorParam, "Could not read the submitted form.")
		return
	}

	params := domain.UserParams{
		Email: r.PostFormValue("email"),
		Name:  r.PostFormValue("name"),
	}

	if _, err := h.userService.CreateUser(r.Context(), params); err != nil {
		redirectError(w, r, userErrorParam, err, "Could not create the user. Please try again.")
		return
	}

	h.invalidateListing(r)
	redirectSuccess(w, r, userSuccessParam, "User created.")
}

func (h *UserHandler) invalidateListing(r *http.Request) {
	if err := h.cache.Invalidate(r.Context()); err != nil {
		logging.LoggerFromContext(r.Context()).Warn("listing cache invalidation failed", "error", err.Error())
	}
}
