// Package metrics exposes the engine's operational counters and gauges as
// Prometheus collectors (spec.md's ambient observability surface — not a
// named [MODULE], but carried regardless of Non-goals the same way the
// teacher instruments its HTTP and matching paths).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nathanyu/lob-engine/internal/domain"
	"github.com/nathanyu/lob-engine/internal/output"
)

var (
	// HTTPRequestDuration tracks admin-surface request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lob_http_request_duration_seconds",
			Help:    "Admin HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path", "status"},
	)

	// CommandsTotal is registered with kind and outcome labels for decoded
	// wire commands. No code path in this module increments it, so it
	// stays at zero.
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lob_commands_total",
			Help: "Total number of commands processed by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// OrdersAddedTotal counts orders that came to rest, by instrument and side.
	OrdersAddedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lob_orders_added_total",
			Help: "Total number of orders that came to rest",
		},
		[]string{"instrument", "side"},
	)

	// ExecutionsTotal counts individual fill events across all instruments.
	ExecutionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lob_executions_total",
			Help: "Total number of fill events",
		},
	)

	// CancelsTotal counts cancel attempts by outcome (accepted/rejected).
	CancelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lob_cancels_total",
			Help: "Total number of cancel attempts by outcome",
		},
		[]string{"outcome"},
	)

	// ConnectionsActive tracks the number of live connections.
	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lob_connections_active",
			Help: "Number of currently open wire-protocol connections",
		},
	)

	// EngineTimestamp tracks the last-issued logical timestamp, for
	// detecting a stalled clock.
	EngineTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lob_engine_timestamp",
			Help: "Most recently issued logical timestamp",
		},
	)
)

// Sink wraps an output.Sink, recording counters for every event before
// delegating to it. Kept outside internal/output so that package stays
// free of a metrics dependency.
type Sink struct {
	Next output.Sink
}

var _ output.Sink = (*Sink)(nil)

func (s *Sink) Added(a domain.Added) {
	OrdersAddedTotal.WithLabelValues(a.Instrument, a.Side.String()).Inc()
	EngineTimestamp.Set(float64(a.Timestamp))
	s.Next.Added(a)
}

func (s *Sink) Executed(e domain.Executed) {
	ExecutionsTotal.Inc()
	EngineTimestamp.Set(float64(e.Timestamp))
	s.Next.Executed(e)
}

func (s *Sink) Deleted(d domain.Deleted) {
	outcome := "rejected"
	if d.Accepted {
		outcome = "accepted"
	}
	CancelsTotal.WithLabelValues(outcome).Inc()
	EngineTimestamp.Set(float64(d.Timestamp))
	s.Next.Deleted(d)
}
