package users

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/pkg/handlers"
	"github.com/JaimeStill/elib/pkg/routes"
)

// Handler provides HTTP endpoints for account operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "users"),
	}
}

// Routes returns the route group definition for account endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/users",
		Tags:   []string{"Users"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register, OpenAPI: Spec.Register},
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: Spec.Login},
			{Method: "GET", Pattern: "/me", Handler: h.Me, Secure: true, OpenAPI: Spec.Me},
		},
	}
}

// Register creates an account and returns a session for it.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: malformed request body", ErrValidation))
		return
	}

	session, err := h.sys.Register(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusCreated, session, "User registered successfully.")
}

// Login exchanges credentials for a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: malformed request body", ErrValidation))
		return
	}

	session, err := h.sys.Login(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, session, "Logged in successfully.")
}

// Me returns the account of the authenticated caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthorized)
		return
	}

	user, err := h.sys.Find(r.Context(), principal.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, user, "User found successfully.")
}
