// Package metrics defines the operator's Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome is the result of one reconciliation attempt.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	// OutcomeSkipped marks events that did not require a reconciliation.
	OutcomeSkipped Outcome = "skipped"
)

// Metrics holds the collectors recorded by the controller and the
// replication engine.
type Metrics struct {
	Events            *prometheus.CounterVec
	ReconcileTotal    *prometheus.CounterVec
	ReconcileDuration *prometheus.HistogramVec
	ObjectsApplied    prometheus.Counter
	StatusErrors      prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "replicator",
			Name:      "events_total",
			Help:      "Watch events received, by event type.",
		}, []string{"type"}),
		ReconcileTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "replicator",
			Name:      "reconcile_total",
			Help:      "Reconciliations handled, by outcome.",
		}, []string{"outcome"}),
		ReconcileDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "replicator",
			Name:      "reconcile_duration_seconds",
			Help:      "Time spent reconciling one Replicator, by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		ObjectsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "replicator",
			Name:      "objects_applied_total",
			Help:      "Target objects successfully written.",
		}),
		StatusErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "replicator",
			Name:      "status_update_errors_total",
			Help:      "Failed Replicator status patches.",
		}),
	}
	reg.MustRegister(m.Events, m.ReconcileTotal, m.ReconcileDuration, m.ObjectsApplied, m.StatusErrors)
	return m
}

// ObserveReconcile records one reconciliation that started at start.
func (m *Metrics) ObserveReconcile(outcome Outcome, start time.Time) {
	m.ReconcileTotal.WithLabelValues(string(outcome)).Inc()
	if outcome != OutcomeSkipped {
		m.ReconcileDuration.WithLabelValues(string(outcome)).Observe(time.Since(start).Seconds())
	}
}
