package routes

import (
	"net/http"

	"github.com/JaimeStill/elib/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
// Children inherit the prefix but not the tags.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Register adds every route in groups to mux.
func Register(mux *http.ServeMux, guard Guard, groups ...Group) {
	walk(groups, "", func(prefix string, _ Group, r Route) {
		mux.Handle(r.Method+" "+prefix+r.Pattern, r.handler(guard))
	})
}

// Document adds an OpenAPI operation for every route that declares one.
func Document(spec *openapi.Spec, groups ...Group) {
	walk(groups, "", func(prefix string, g Group, r Route) {
		if r.OpenAPI == nil {
			return
		}
		path := prefix + r.Pattern
		if path == "" {
			path = "/"
		}
		spec.AddOperation(path, r.Method, r.operation(g.Tags))
	})
}

func walk(groups []Group, parent string, visit func(prefix string, g Group, r Route)) {
	for _, g := range groups {
		prefix := parent + g.Prefix
		for _, r := range g.Routes {
			visit(prefix, g, r)
		}
		walk(g.Children, prefix, visit)
	}
}
