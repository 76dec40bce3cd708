package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row kinds
const (
	KindIn       = "in"
	KindOut      = "out"
	KindDropped  = "dropped"
	KindExcluded = "excluded"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Runs      *prometheus.CounterVec
	StageTime *prometheus.HistogramVec
	Rows      *prometheus.CounterVec
	Conflicts *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the given registerer.
// A nil registerer uses the default one.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fusion_runs_total",
			Help:      "The total number of fusion runs",
		}, []string{"status"}),
		StageTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fusion_stage_seconds",
			Help:      "Time taken by each fusion stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		Rows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fusion_rows_total",
			Help:      "Rows entering, leaving, dropped or excluded per stage",
		}, []string{"stage", "kind"}),
		Conflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fusion_conflicts_total",
			Help:      "Ambiguous bindings retained in audit tables",
		}, []string{"kind"}),
	}
}

// ObserveStage records the duration of one stage since start
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageTime.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// AddRows adds n rows of the given kind to a stage
func (m *Metrics) AddRows(stage, kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Rows.WithLabelValues(stage, kind).Add(float64(n))
}

// AddConflicts adds n audit rows of the given kind
func (m *Metrics) AddConflicts(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Conflicts.WithLabelValues(kind).Add(float64(n))
}

// RunFinished counts a run with the given status
func (m *Metrics) RunFinished(status string) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(status).Inc()
}
