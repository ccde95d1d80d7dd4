// Package apperr defines the failure taxonomy shared by every service.
// Handlers map these to HTTP statuses; anything unrecognized is treated
// as an upstream failure and reported generically.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: unknown id/slug/key.
	ErrNotFound = errors.New("not found")
	// ErrConflict: slug or key collision.
	ErrConflict = errors.New("conflict")
	// ErrValidation: missing or malformed required field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password, with identical message text for either case.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrForbidden          = errors.New("forbidden")

	// ErrUpstreamTimeout: a collaborator (image processing) exceeded
	// its deadline.
	ErrUpstreamTimeout = errors.New("upstream timeout")
)

// Validationf wraps ErrValidation with a field-specific message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a detail message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
