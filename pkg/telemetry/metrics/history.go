package metrics

import (
	"portal-hq/chronicle/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// HistoryMetrics tracks metrics for the action store and retention sweeper.
//
// Metrics:
//   - chronicle_actions_created_total: count of persisted action records
//   - chronicle_actions_deleted_total: count of deleted records by path
//   - chronicle_sweep_runs_total: scheduled sweep runs by outcome
type HistoryMetrics struct {
	actionsCreated prometheus.Counter
	actionsDeleted *prometheus.CounterVec
	sweepRuns      *prometheus.CounterVec
}

// NewHistoryMetrics creates and registers history metrics with the provided registry.
func NewHistoryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HistoryMetrics {
	hm := &HistoryMetrics{
		actionsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "actions_created_total",
				Help:      "Total number of action records persisted",
			},
		),

		actionsDeleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "actions_deleted_total",
				Help:      "Total number of action records deleted",
			},
			[]string{"path"},
		),

		sweepRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "sweep_runs_total",
				Help:      "Total number of scheduled retention sweep runs",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		hm.actionsCreated,
		hm.actionsDeleted,
		hm.sweepRuns,
	)

	return hm
}

// RecordCreated records that an action record was persisted.
func (hm *HistoryMetrics) RecordCreated() {
	hm.actionsCreated.Inc()
}

// RecordDeleted records deleted records attributed to a deletion path
// ("request" or "sweep").
func (hm *HistoryMetrics) RecordDeleted(path string, count int64) {
	if count > 0 {
		hm.actionsDeleted.WithLabelValues(path).Add(float64(count))
	}
}

// RecordSweep records one scheduled sweep run by outcome.
func (hm *HistoryMetrics) RecordSweep(err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	hm.sweepRuns.WithLabelValues(outcome).Inc()
}
