package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/internal/books"
	"github.com/JaimeStill/elib/internal/config"
	"github.com/JaimeStill/elib/internal/users"
	"github.com/JaimeStill/elib/pkg/openapi"
	"github.com/JaimeStill/elib/pkg/routes"
)

// SpecPath is the path, relative to the API base path, of the OpenAPI document.
const SpecPath = "/openapi.json"

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Users.Handler().Routes(),
		domain.Books.Handler(runtime.MaxUploadSize).Routes(),
	}

	routes.Register(
		mux,
		auth.Authenticate(runtime.Tokens, runtime.Logger),
		groups...,
	)

	spec, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET "+SpecPath, openapi.ServeSpec(spec))

	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.OpenAPI.Server(cfg.API.BasePath))

	spec.Components.AddSchemas(books.Spec.Schemas())
	spec.Components.AddSchemas(users.Spec.Schemas())

	routes.Document(spec, groups...)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
