package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CountRecorded("qr-scan")
	m.CountRecorded("qr-scan")
	m.CountRecorded("manual-entry")
	m.LogReversed("scan")
	m.RecordRetried()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.countsRecorded.WithLabelValues("qr-scan")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.countsRecorded.WithLabelValues("manual-entry")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.logReversals.WithLabelValues("scan")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.recordRetries))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.CountRecorded("qr-scan")
		m.LogReversed("scan")
		m.RecordRetried()
	})
}
