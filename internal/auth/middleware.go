package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/elib/pkg/handlers"
)

// Authenticate returns middleware that requires a valid bearer token and
// stores the resulting Principal in the request context.
func Authenticate(tokens *Tokens, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthorized)
				return
			}

			p, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				logger.Debug("token rejected", "error", err)
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
