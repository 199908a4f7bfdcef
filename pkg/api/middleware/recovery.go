package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"portal-hq/chronicle/pkg/api"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a 500
// problem response. It logs the panic with stack trace for debugging but
// does not expose internal details to clients.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())
				stack := debug.Stack()

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)

				api.WriteProblem(w, api.NewProblem(
					http.StatusInternalServerError,
					"an internal error occurred",
				))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
