// Package metrics provides Prometheus metrics for Chronicle.
//
// The Collector owns a private registry and registers two metric groups:
//
//   - RequestMetrics: HTTP request count and duration, labeled by method,
//     matched route pattern, and status code.
//   - HistoryMetrics: action records created and deleted (by deletion path)
//     and scheduled sweep runs (by outcome).
//
// All metrics share the configured namespace (default "chronicle"). When
// metrics are disabled in configuration, the Record* methods are no-ops.
// The Handler method exposes the registry via promhttp for scraping.
package metrics
