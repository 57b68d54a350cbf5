package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/elib/internal/api"
	"github.com/JaimeStill/elib/internal/config"
	"github.com/JaimeStill/elib/internal/infrastructure"
	"github.com/JaimeStill/elib/pkg/middleware"
	"github.com/JaimeStill/elib/pkg/module"
	"github.com/JaimeStill/elib/web/scalar"
)

type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule, err := scalar.NewModule("/scalar", cfg.API.BasePath+api.SpecPath)
	if err != nil {
		return nil, err
	}
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) error {
	for _, mod := range []*module.Module{m.API, m.Scalar} {
		if err := router.Mount(mod); err != nil {
			return err
		}
	}
	return nil
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "starting")
			return
		}
		if err := infra.Database.Check(r.Context()); err != nil {
			infra.Logger.Warn("readiness check failed", "error", err)
			writeStatus(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
