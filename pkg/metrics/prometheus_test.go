package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("paxfusion", reg)

	m.AddRows("dedup", KindIn, 5)
	m.AddRows("dedup", KindIn, 2)
	m.AddRows("dedup", KindDropped, 0)
	m.AddConflicts("conflicted_key", 3)
	m.RunFinished("success")
	m.ObserveStage("dedup", time.Now())

	assert.Equal(t, 7.0, testutil.ToFloat64(m.Rows.WithLabelValues("dedup", KindIn)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Rows.WithLabelValues("dedup", KindDropped)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Conflicts.WithLabelValues("conflicted_key")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("success")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StageTime))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AddRows("dedup", KindOut, 1)
		m.AddConflicts("x", 1)
		m.RunFinished("failed")
		m.ObserveStage("dedup", time.Now())
	})
}
