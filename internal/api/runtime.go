package api

import (
	"database/sql"
	"log/slog"

	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/internal/config"
	"github.com/JaimeStill/elib/internal/infrastructure"
	"github.com/JaimeStill/elib/pkg/pagination"
	"github.com/JaimeStill/elib/pkg/storage"
)

// Runtime is what the API module draws from infrastructure and config:
// the shared connections plus the request limits and a module-scoped logger.
type Runtime struct {
	Logger        *slog.Logger
	DB            *sql.DB
	Storage       storage.System
	Tokens        *auth.Tokens
	Pagination    pagination.Config
	MaxUploadSize int64
	PasswordCost  int
}

// NewRuntime narrows infra and cfg to the API module's needs.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Logger:        infra.Logger.With("module", "api"),
		DB:            infra.Database.Connection(),
		Storage:       infra.Storage,
		Tokens:        infra.Tokens,
		Pagination:    cfg.API.Pagination,
		MaxUploadSize: cfg.API.MaxUploadSizeBytes(),
		PasswordCost:  cfg.Auth.PasswordCost,
	}
}
