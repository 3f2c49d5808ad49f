package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lorrc/owner-dashboard/internal/auth"
	"github.com/lorrc/owner-dashboard/internal/core/domain"
	"github.com/lorrc/owner-dashboard/internal/infrastructure/logging"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// IdentityKey is the key used to store the verified identity in the request context.
const IdentityKey contextKey = "identity"

// RequireSession verifies the session cookie and redirects to the login view
// when it is absent or invalid. Gated handlers never run without a verified
// identity in the request context.
func RequireSession(sessions auth.SessionManager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				RedirectToLogin(w, r)
				return
			}

			identity, err := sessions.Verify(cookie.Value)
			if err != nil {
				RedirectToLogin(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			ctx = logging.WithUserID(ctx, identity.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectToLogin sends the browser to the login view, carrying the original
// URL so the user lands back where they started after signing in.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login?callbackUrl=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// IdentityFromContext retrieves the verified identity from the context.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(domain.Identity)
	return identity, ok
}
