package errors

import "errors"

// Domain errors - these represent business rule violations
var (
	// Authentication
	ErrInvalidCredentials = errors.New("invalid credentials")

	// User validation
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("email format is invalid")
	ErrEmailTooLong  = errors.New("email exceeds maximum length")
	ErrEmailTaken    = errors.New("a user with this email already exists")
	ErrNameTooLong   = errors.New("name exceeds maximum length")

	// Project validation
	ErrProjectNotFound = errors.New("project not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title exceeds maximum length")
	ErrIDRequired      = errors.New("id is required")
	ErrIDInvalid       = errors.New("id format is invalid")
)
