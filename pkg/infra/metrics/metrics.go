package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modgate_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "modgate_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "path"},
	)

	ModerationOutcomes = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modgate_moderation_outcomes_total",
			Help: "Moderation pipeline outcomes by resolved status",
		},
		[]string{"status"},
	)

	ModelFallbacks = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "modgate_model_fallbacks_total",
			Help: "Runs that fell back to the safe verdict because the model was unavailable or unparseable",
		},
	)
)

func Registry() *prometheus.Registry {
	return registry
}
