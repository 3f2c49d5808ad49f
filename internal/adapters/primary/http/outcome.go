package http

import (
	"errors"
	"net/http"
	"net/url"

	apperrors "github.com/lorrc/owner-dashboard/internal/core/errors"
	"github.com/lorrc/owner-dashboard/internal/infrastructure/logging"
)

// Mutation outcomes travel back to the dashboard as query parameters, so
// the result of a POST survives the redirect that follows it.
const (
	userSuccessParam    = "userSuccess"
	userErrorParam      = "userError"
	projectSuccessParam = "projectSuccess"
	projectErrorParam   = "projectError"
)

// validationMessages maps domain validation errors to the exact text shown
// in the dashboard banner. Anything not listed here is reported with a
// generic message so storage details never leak to the page.
var validationMessages = map[error]string{
	apperrors.ErrEmailRequired:   "Email is required.",
	apperrors.ErrEmailInvalid:    "Please enter a valid email address.",
	apperrors.ErrEmailTooLong:    "Email is too long.",
	apperrors.ErrEmailTaken:      "A user with this email already exists.",
	apperrors.ErrNameTooLong:     "Name is too long.",
	apperrors.ErrTitleRequired:   "Title is required.",
	apperrors.ErrTitleTooLong:    "Title is too long.",
	apperrors.ErrIDRequired:      "Missing project id.",
	apperrors.ErrIDInvalid:       "Invalid project id.",
	apperrors.ErrProjectNotFound: "Project not found. It may have already been deleted.",
}

func redirectWithParam(w http.ResponseWriter, r *http.Request, param, message string) {
	target := "/?" + param + "=" + url.QueryEscape(message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func redirectSuccess(w http.ResponseWriter, r *http.Request, param, message string) {
	redirectWithParam(w, r, param, message)
}

// redirectError picks the banner text for a failed mutation. Validation
// failures get their specific message and a warn-level log entry; everything
// else is treated as unexpected, logged at error level, and reported with
// the caller-supplied generic message.
func redirectError(w http.ResponseWriter, r *http.Request, param string, err error, generic string) {
	logger := logging.LoggerFromContext(r.Context())

	for sentinel, message := range validationMessages {
		if errors.Is(err, sentinel) {
			logger.Warn("mutation rejected", "reason", err.Error(), "path", r.URL.Path)
			redirectWithParam(w, r, param, message)
			return
		}
	}

	logger.Error("mutation failed", "error", err.Error(), "path", r.URL.Path)
	redirectWithParam(w, r, param, generic)
}
