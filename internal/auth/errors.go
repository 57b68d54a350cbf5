package auth

import "errors"

var (
	// ErrUnauthorized indicates a missing, malformed, expired, or forged bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)
