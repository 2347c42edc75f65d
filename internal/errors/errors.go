package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials covers every login failure: unknown email, role
	// mismatch, or wrong password. Callers must not distinguish them.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyRegistered is returned when signing up an email that exists.
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidRole is returned when the requested role is not a known role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrTooManyAttempts is returned when login is throttled for the email.
	ErrTooManyAttempts = errors.New("too many failed login attempts")
)

// ErrorResponse is the uniform failure envelope returned by the API.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MapErrorToHTTP maps domain errors to an HTTP status and user-visible message.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrEmailAlreadyRegistered):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
