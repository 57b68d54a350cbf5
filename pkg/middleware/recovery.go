package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/JaimeStill/elib/pkg/handlers"
)

var errInternal = errors.New("internal server error")

// Recovery returns middleware that converts a handler panic into a 500
// error response. The stack is logged, never returned to the client.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error(
					"panic recovered",
					"panic", rec,
					"request_id", RequestIDFrom(r.Context()),
					"stack", string(debug.Stack()),
				)
				handlers.RespondError(w, logger, http.StatusInternalServerError, errInternal)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
