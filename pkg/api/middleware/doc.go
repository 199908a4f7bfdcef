// Package middleware provides the HTTP middleware chain for Chronicle.
//
// Middleware is applied in this order (outermost first):
//
//  1. RecoveryMiddleware: catches panics, logs them with a stack trace,
//     and returns a sanitized 500 problem response.
//  2. RequestIDMiddleware: assigns or propagates X-Request-ID and places
//     it in the request context and response headers.
//  3. LoggingMiddleware: structured request logs with latency and status.
//  4. MetricsMiddleware: per-route request count and duration.
//
// Context values are accessed through the Get* helpers rather than raw
// context keys.
package middleware
