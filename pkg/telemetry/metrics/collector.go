package metrics

import (
	"time"

	"portal-hq/chronicle/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the orchestrator for all Prometheus metrics in Chronicle.
// It manages metric registration and provides a unified interface for
// recording metrics across the HTTP surface, the store, and the retention
// sweeper.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// HTTP request metrics
	requestMetrics *RequestMetrics

	// Action store and retention metrics
	historyMetrics *HistoryMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Default into a copy so the caller's configuration is untouched.
	conf := *cfg
	if conf.Namespace == "" {
		conf.Namespace = "chronicle"
	}

	c := &Collector{
		config:   &conf,
		registry: registry,
	}

	c.requestMetrics = NewRequestMetrics(&conf, registry)
	c.historyMetrics = NewHistoryMetrics(&conf, registry)

	return c
}

// RecordRequest records metrics for a completed HTTP request.
//
// Parameters:
//   - method: HTTP method (e.g., "GET", "POST")
//   - route: matched route pattern, not the raw path
//   - status: HTTP status code
//   - duration: total request duration
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.requestMetrics.RecordRequest(method, route, status, duration)
}

// RecordActionCreated records that an action record was persisted.
func (c *Collector) RecordActionCreated() {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordCreated()
}

// RecordActionsDeleted records that action records were deleted, attributed
// to either the "request" or the "sweep" deletion path.
func (c *Collector) RecordActionsDeleted(path string, count int64) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordDeleted(path, count)
}

// RecordSweep records the outcome of a scheduled retention sweep.
func (c *Collector) RecordSweep(deleted int64, err error) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordSweep(err)
	if err == nil && deleted > 0 {
		c.historyMetrics.RecordDeleted("sweep", deleted)
	}
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
