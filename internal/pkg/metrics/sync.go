// Package metrics holds the prometheus collectors exported by the warehouse service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeStale   = "stale"
)

// SyncMetrics records refresh and mutation activity of the order sync engine.
// A nil *SyncMetrics is valid and records nothing.
type SyncMetrics struct {
	refreshes       *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	snapshotSize    prometheus.Gauge
	mutations       *prometheus.CounterVec
	feedEvents      *prometheus.CounterVec
	unreadable      prometheus.Counter
}

// NewSyncMetrics registers the collectors on reg.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return nil
	}
	m := &SyncMetrics{
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_refresh_total",
			Help: "Order set refreshes by outcome.",
		}, []string{"outcome"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orders_refresh_duration_seconds",
			Help:    "Duration of full order set fetches.",
			Buckets: prometheus.DefBuckets,
		}),
		snapshotSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orders_snapshot_size",
			Help: "Orders held in the local snapshot.",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_mutations_total",
			Help: "Order writes by operation and outcome.",
		}, []string{"operation", "outcome"}),
		feedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_change_events_total",
			Help: "Change notifications received by operation.",
		}, []string{"op"}),
		unreadable: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_unreadable_records_total",
			Help: "Stored order rows left out of a fetch because they could not be read.",
		}),
	}
	reg.MustRegister(m.refreshes, m.refreshDuration, m.snapshotSize, m.mutations, m.feedEvents, m.unreadable)
	return m
}

// ObserveRefresh records one refresh. Duration and snapshot size are only recorded
// for successful ones.
func (m *SyncMetrics) ObserveRefresh(outcome string, took time.Duration, size int) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.refreshDuration.Observe(took.Seconds())
		m.snapshotSize.Set(float64(size))
	}
}

// ObserveMutation records a write by operation; a non-nil err counts as a failure.
func (m *SyncMetrics) ObserveMutation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.mutations.WithLabelValues(operation, outcome).Inc()
}

// ObserveChangeEvent counts a change notification; a blank op is counted as "unknown".
func (m *SyncMetrics) ObserveChangeEvent(op string) {
	if m == nil {
		return
	}
	if op == "" {
		op = "unknown"
	}
	m.feedEvents.WithLabelValues(op).Inc()
}

// ObserveUnreadableRecord counts a stored row that was skipped while loading orders.
func (m *SyncMetrics) ObserveUnreadableRecord() {
	if m == nil {
		return
	}
	m.unreadable.Inc()
}
