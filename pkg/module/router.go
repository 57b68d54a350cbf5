package module

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Router dispatches each request to the mounted module with the longest
// matching prefix. Requests that match no module fall through to a native
// ServeMux used for top-level endpoints such as health probes.
type Router struct {
	modules []*Module
	native  *http.ServeMux
}

// NewRouter creates a Router with no mounted modules.
func NewRouter() *Router {
	return &Router{native: http.NewServeMux()}
}

// HandleNative registers a handler on the fallback mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount adds m to the router. Mounting two modules at the same prefix is an error.
func (r *Router) Mount(m *Module) error {
	for _, existing := range r.modules {
		if existing.prefix == m.prefix {
			return fmt.Errorf("module already mounted at %s", m.prefix)
		}
	}

	r.modules = append(r.modules, m)
	slices.SortFunc(r.modules, func(a, b *Module) int {
		return len(b.prefix) - len(a.prefix)
	})
	return nil
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	for _, m := range r.modules {
		if m.matches(path) {
			if path != req.URL.Path {
				req = req.Clone(req.Context())
				req.URL.Path = path
			}
			m.Serve(w, req)
			return
		}
	}

	r.native.ServeHTTP(w, req)
}
