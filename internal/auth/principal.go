// Package auth issues and verifies bearer tokens and carries the
// authenticated principal through request contexts.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored in ctx.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
