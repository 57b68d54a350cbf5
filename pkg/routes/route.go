package routes

import (
	"net/http"

	"github.com/JaimeStill/elib/pkg/openapi"
)

// Guard wraps a handler with an authentication check.
type Guard func(http.Handler) http.Handler

// Route binds an HTTP method and pattern to a handler.
// Secure routes are wrapped with the guard passed to Register and
// documented with bearer security.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	Secure  bool
	OpenAPI *openapi.Operation
}

var unauthorized = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "unauthorized", http.StatusUnauthorized)
})

// handler applies guard to secure routes. Without a guard a secure
// route always answers 401.
func (r Route) handler(guard Guard) http.Handler {
	switch {
	case !r.Secure:
		return r.Handler
	case guard == nil:
		return unauthorized
	default:
		return guard(r.Handler)
	}
}

// operation returns a copy of the route's operation with group tags and
// security filled in where the route left them unset.
func (r Route) operation(tags []string) *openapi.Operation {
	op := *r.OpenAPI
	if len(op.Tags) == 0 {
		op.Tags = tags
	}
	if r.Secure && op.Security == nil {
		op.Security = openapi.BearerSecurity()
	}
	return &op
}
