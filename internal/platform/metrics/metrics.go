package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the verification counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	countsRecorded *prometheus.CounterVec
	logReversals   *prometheus.CounterVec
	recordRetries  prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		countsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockverify",
			Name:      "counts_recorded_total",
			Help:      "Count observations and corrections applied to verification items.",
		}, []string{"method"}),
		logReversals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockverify",
			Name:      "log_reversals_total",
			Help:      "Verification logs deleted, by the kind of the deleted log.",
		}, []string{"action"}),
		recordRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stockverify",
			Name:      "record_retries_total",
			Help:      "Item writes retried after a concurrent modification.",
		}),
	}
	reg.MustRegister(m.countsRecorded, m.logReversals, m.recordRetries)
	return m
}

// CountRecorded increments the recorded counter for a method label.
func (m *Metrics) CountRecorded(method string) {
	if m == nil {
		return
	}
	m.countsRecorded.WithLabelValues(method).Inc()
}

// LogReversed increments the reversal counter for the deleted log's kind.
func (m *Metrics) LogReversed(action string) {
	if m == nil {
		return
	}
	m.logReversals.WithLabelValues(action).Inc()
}

// RecordRetried increments the optimistic retry counter.
func (m *Metrics) RecordRetried() {
	if m == nil {
		return
	}
	m.recordRetries.Inc()
}
