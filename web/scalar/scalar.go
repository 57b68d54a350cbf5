// Package scalar serves the Scalar API reference UI for the elib OpenAPI document.
package scalar

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/elib/pkg/module"
	"github.com/JaimeStill/elib/pkg/web"
)

//go:embed index.html
var staticFS embed.FS

// NewModule creates a module that serves the Scalar API reference UI at basePath,
// rendering the OpenAPI document found at specURL.
func NewModule(basePath, specURL string) (*module.Module, error) {
	router, err := buildRouter(basePath, specURL)
	if err != nil {
		return nil, err
	}
	return module.New(basePath, router)
}

func buildRouter(basePath, specURL string) (http.Handler, error) {
	tmpl, err := template.ParseFS(staticFS, "index.html")
	if err != nil {
		return nil, err
	}

	var page bytes.Buffer
	data := map[string]string{
		"BasePath": basePath,
		"SpecURL":  specURL,
	}
	if err := tmpl.Execute(&page, data); err != nil {
		return nil, err
	}

	router := web.NewRouter(http.RedirectHandler(basePath+"/", http.StatusFound))
	router.HandleFunc("GET /{$}", web.ServeBytes(page.Bytes(), "text/html; charset=utf-8"))

	return router, nil
}
