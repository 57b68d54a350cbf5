package users

import (
	"errors"
	"net/http"
)

// Domain errors for user operations.
var (
	ErrValidation         = errors.New("invalid user")
	ErrNotFound           = errors.New("user not found")
	ErrDuplicate          = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// MapHTTPStatus maps user domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
