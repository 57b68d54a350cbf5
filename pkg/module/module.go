// Package module mounts self-contained HTTP surfaces, each with its own
// middleware chain, under a path prefix of a shared Router.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/elib/pkg/middleware"
)

// Module serves an inner handler beneath a fixed path prefix. Requests reach
// the inner handler with the prefix removed.
type Module struct {
	prefix string
	router http.Handler
	chain  middleware.Chain
}

// New creates a Module mounted at prefix. The prefix must begin with a slash,
// must not end with one, and must not contain empty segments ("/api" and
// "/api/v1" are both valid).
func New(prefix string, router http.Handler) (*Module, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, err
	}
	return &Module{prefix: prefix, router: router}, nil
}

// Prefix returns the path the module is mounted at.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module's chain.
func (m *Module) Use(mw middleware.Middleware) {
	m.chain.Use(mw)
}

// Handler returns the inner router wrapped in the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.chain.Then(m.router)
}

// Serve strips the module prefix and dispatches to the wrapped inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, stripPrefix(req, m.prefix))
}

func (m *Module) matches(path string) bool {
	return path == m.prefix || strings.HasPrefix(path, m.prefix+"/")
}

func stripPrefix(req *http.Request, prefix string) *http.Request {
	path := strings.TrimPrefix(req.URL.Path, prefix)
	if path == "" {
		path = "/"
	}

	r := req.Clone(req.Context())
	r.URL.Path = path
	r.URL.RawPath = ""
	return r
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("module prefix must start with /: %q", prefix)
	case prefix == "/" || strings.HasSuffix(prefix, "/"):
		return fmt.Errorf("module prefix must not end with /: %q", prefix)
	case strings.Contains(prefix, "//"):
		return fmt.Errorf("module prefix contains an empty segment: %q", prefix)
	}
	return nil
}
