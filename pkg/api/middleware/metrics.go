package middleware

import (
	"net/http"
	"strings"
	"time"

	"portal-hq/chronicle/pkg/telemetry/metrics"
)

// MetricsMiddleware records request count and duration for each request.
// Paths are collapsed to route patterns before becoming label values so
// per-user paths cannot blow up metric cardinality.
func MetricsMiddleware(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			collector.RecordRequest(r.Method, routePattern(r.URL.Path), rw.statusCode, time.Since(startTime))
		})
	}
}

// routePattern collapses a request path to its route pattern.
func routePattern(path string) string {
	switch {
	case path == "/v1/actions":
		return "/v1/actions"
	case strings.HasPrefix(path, "/v1/actions/"):
		return "/v1/actions/{userId}"
	case path == "/health" || path == "/ready" || path == "/metrics":
		return path
	default:
		return "other"
	}
}
