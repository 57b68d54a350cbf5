package storage

import "errors"

// Key and lookup failures. Keys are validated before any request reaches
// the blob service, so ErrEmptyKey and ErrInvalidKey never cost a round trip.
var (
	ErrNotFound   = errors.New("blob not found")
	ErrEmptyKey   = errors.New("storage key must not be empty")
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
	ErrForeignURL = errors.New("url does not belong to this storage container")
)
