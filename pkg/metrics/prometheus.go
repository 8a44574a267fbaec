package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide metrics container for the pricer binary.
type Metrics struct {
	// Cascade (§4.6) metrics.
	StageAccepted        *prometheus.CounterVec
	StageDiscarded       *prometheus.CounterVec
	StageDuration        *prometheus.HistogramVec
	CascadeAcceptedTotal prometheus.Counter
	CascadeEmptyTotal    prometheus.Counter

	// Labelling engine (§4.3) metrics.
	FrontierSize           *prometheus.HistogramVec
	PreconditionViolations prometheus.Counter

	// Pool metrics.
	PoolSize *prometheus.GaugeVec

	// Runtime and service metadata.
	MemoryUsage *prometheus.GaugeVec
	Goroutines  prometheus.Gauge
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics registers and returns the metrics container under the given
// namespace/subsystem.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		StageAccepted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stage_accepted_total",
				Help:      "Accepted columns per cascade stage",
			},
			[]string{"stage"},
		),

		StageDiscarded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stage_discarded_total",
				Help:      "Discarded candidates per cascade stage, by bucket",
			},
			[]string{"stage", "bucket"},
		),

		StageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stage_duration_seconds",
				Help:      "Duration of one cascade stage across all vessel-class graphs",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"stage"},
		),

		CascadeAcceptedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cascade_accepted_total",
				Help:      "Total number of Solve calls that grew the column pool",
			},
		),

		CascadeEmptyTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cascade_empty_total",
				Help:      "Total number of Solve calls whose cascade found no acceptable column",
			},
		),

		FrontierSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "frontier_size",
				Help:      "Number of non-dominated labels settled per node",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
			},
			[]string{"label_kind"},
		),

		PreconditionViolations: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "precondition_violations_total",
				Help:      "Total number of malformed-graph precondition violations recovered by Solve",
			},
		),

		PoolSize: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "column_pool_size",
				Help:      "Current number of columns held by the pool",
			},
			[]string{"problem_reference"},
		),

		MemoryUsage: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memory_usage_bytes",
				Help:      "Current memory usage",
			},
			[]string{"type"},
		),

		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goroutines",
				Help:      "Current number of goroutines",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the global metrics container, initializing it with the
// "pricer" namespace on first use.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("pricer", "")
	}
	return defaultMetrics
}

// RecordStage records one cascade stage's outcome: its wall-clock duration
// and its accepted/discarded-by-bucket tallies (§4.6's StageReport).
func (m *Metrics) RecordStage(stage string, duration time.Duration, accepted int, discarded map[string]int) {
	m.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	m.StageAccepted.WithLabelValues(stage).Add(float64(accepted))
	for bucket, n := range discarded {
		m.StageDiscarded.WithLabelValues(stage, bucket).Add(float64(n))
	}
}

// RecordCascadeOutcome records whether a full Solve call grew the pool.
func (m *Metrics) RecordCascadeOutcome(accepted bool) {
	if accepted {
		m.CascadeAcceptedTotal.Inc()
		return
	}
	m.CascadeEmptyTotal.Inc()
}

// RecordFrontierSize records the settled frontier size at one node for one
// label kind ("label" or "elementary_label").
func (m *Metrics) RecordFrontierSize(labelKind string, size int) {
	m.FrontierSize.WithLabelValues(labelKind).Observe(float64(size))
}

// RecordPreconditionViolation increments the precondition-violation counter.
func (m *Metrics) RecordPreconditionViolation() {
	m.PreconditionViolations.Inc()
}

// SetPoolSize records the current column count for a problem reference.
func (m *Metrics) SetPoolSize(problemReference string, size int) {
	m.PoolSize.WithLabelValues(problemReference).Set(float64(size))
}

// SetServiceInfo sets the service_info gauge to 1 for the given labels.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer runs the metrics HTTP server until it errors.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK")) //nolint:errcheck // health endpoint, write error is not actionable
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
