// Package web provides routing and static-content helpers for browser-facing modules.
package web

import "net/http"

// Router is a ServeMux that hands requests matching no registered pattern to
// a fallback handler instead of answering 404. Method mismatches on a
// registered path still receive the mux's 405.
type Router struct {
	*http.ServeMux
	fallback http.Handler
}

// NewRouter creates a Router. A nil fallback keeps the default 404 behavior.
func NewRouter(fallback http.Handler) *Router {
	return &Router{ServeMux: http.NewServeMux(), fallback: fallback}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback != nil {
		if _, pattern := r.ServeMux.Handler(req); pattern == "" && !r.pathRegistered(req) {
			r.fallback.ServeHTTP(w, req)
			return
		}
	}
	r.ServeMux.ServeHTTP(w, req)
}

// pathRegistered reports whether any method is registered for the request path.
func (r *Router) pathRegistered(req *http.Request) bool {
	probe := req.Clone(req.Context())
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		probe.Method = method
		if _, pattern := r.ServeMux.Handler(probe); pattern != "" {
			return true
		}
	}
	return false
}
