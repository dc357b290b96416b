package user

import "errors"

// Repository-level errors
var (
	// Not Found
	ErrUserNotFound = errors.New("user not found")

	// Conflict
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Invalid State
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrUserInactive = errors.New("user account is blocked")
	ErrUserDeleted  = errors.New("user account has been deleted")
)

// Service-level (Business logic) errors
var (
	// Authentication
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Password
	ErrSamePassword     = errors.New("new password cannot be same as current password")
	ErrPasswordMismatch = errors.New("current password is incorrect")

	// Authorization
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden: insufficient permissions")
	ErrInvalidRole  = errors.New("invalid user role")

	// Admin guard rails
	ErrCannotModifyAdmin = errors.New("admin accounts cannot be blocked or deleted")
	ErrCannotChangeOwn   = errors.New("cannot change your own role")
)
