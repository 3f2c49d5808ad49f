package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lorrc/owner-dashboard/internal/auth"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
	"github.com/lorrc/owner-dashboard/internal/infrastructure/logging"
)

const loginFailedMessage = "Invalid email or password"

// AuthHandler serves the login page and manages the session cookie.
type AuthHandler struct {
	authService  ports.AuthService
	sessions     auth.SessionManager
	renderer     *Renderer
	cookieName   string
	cookieMaxAge time.Duration
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, sessions auth.SessionManager, renderer *Renderer, cookieName string, cookieMaxAge time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		renderer:     renderer,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

// ShowLogin renders the login form. The error banner and the callback
// destination both arrive as query parameters.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	data := loginData{
		CallbackURL: safeCallbackURL(r.URL.Query().Get("callbackUrl")),
		Error:       r.URL.Query().Get("error"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderLogin(w, data); err != nil {
		logging.LoggerFromContext(r.Context()).Error("rendering login page", "error", err.Error())
	}
}

// Login verifies the submitted credentials and, on success, issues a session
// token in an HTTP-only cookie before redirecting to the requested page.
// Every failure mode redirects back to the login form with the same message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.LoggerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.redirectLoginFailed(w, r, "/")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	callback := safeCallbackURL(r.PostFormValue("callbackUrl"))

	identity, err := h.authService.Verify(r.Context(), email, password)
	if err != nil {
		logger.Warn("login attempt rejected")
		h.redirectLoginFailed(w, r, callback)
		return
	}

	token, err := h.sessions.Issue(identity)
	if err != nil {
		logger.Error("issuing session token", "error", err.Error())
		h.redirectLoginFailed(w, r, callback)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("login succeeded", "user_id", identity.ID)
	http.Redirect(w, r, callback, http.StatusSeeOther)
}

// Logout clears the session cookie and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) redirectLoginFailed(w http.ResponseWriter, r *http.Request, callback string) {
	target := "/login?error=" + url.QueryEscape(loginFailedMessage) +
		"&callbackUrl=" + url.QueryEscape(callback)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeCallbackURL keeps post-login redirects on this site. Anything that is
// not a plain local path falls back to the dashboard root.
func safeCallbackURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return raw
}
