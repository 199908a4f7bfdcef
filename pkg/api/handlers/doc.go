// Package handlers implements the HTTP handlers for the action history API.
//
// ActionsHandler serves the /v1/actions routes. The self-service routes
// (those with a {userId} path segment) run the ownership check before any
// storage access; the operator-wide list does not, its access is restricted
// by the gateway upstream. Query parameters default from configuration:
// page to 1, pageSize to the configured default, and both showLastHours
// and deleteAfterHours to the retention horizon.
//
// HealthHandler and ReadyHandler back the liveness and readiness probes.
// Readiness pings the store with a bounded probe query.
package handlers
