// Package metrics provides Prometheus metrics for HTTP serving and upstream
// provider calls. All metrics are registered with the default registry at
// package initialization and exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	UpstreamRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_request_total",
			Help: "Calls to external providers by outcome",
		},
		[]string{"provider", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "External provider call latency",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	EvidenceIndexSnippets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "evidence_index_snippets",
			Help: "Snippets in the current evidence embedding index",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(UpstreamRequestTotals)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(EvidenceIndexSnippets)
}

// ObserveUpstream records one provider call.
func ObserveUpstream(provider, outcome string, seconds float64) {
	UpstreamRequestTotals.WithLabelValues(provider, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(provider).Observe(seconds)
}
