package books

import (
	"errors"
	"net/http"
)

// Domain errors for book operations.
var (
	ErrValidation  = errors.New("invalid book")
	ErrNotFound    = errors.New("book not found")
	ErrForbidden   = errors.New("you are not authorized to modify this book")
	ErrUpload      = errors.New("asset transfer failed")
	ErrPersistence = errors.New("book persistence failed")
	ErrDuplicate   = errors.New("book already exists")
)

// MapHTTPStatus maps book domain errors to HTTP status codes.
// Anything unrecognized is an internal error.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
