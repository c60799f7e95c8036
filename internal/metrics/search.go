package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobdex",
			Name:      "search_duration_seconds",
			Help:      "Job search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind", "status"}, // kind: "text" / "browse"
	)

	DecodeFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobdex",
			Name:      "decode_failures_total",
			Help:      "Stored job documents skipped because they could not be decoded",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(DecodeFailuresTotal)
	searchMetricsRegistered = true
}
