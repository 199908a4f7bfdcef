// Package telemetry provides observability for Chronicle.
//
// # Components
//
//   - logging: structured logging via log/slog
//   - metrics: Prometheus metrics collection and exposition
//
// The subpackages are wired at startup: logging.Setup installs the process
// default logger, and a metrics.Collector is handed to the HTTP middleware,
// the handlers, and the retention scheduler.
package telemetry
