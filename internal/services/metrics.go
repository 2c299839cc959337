package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Custom Prometheus metrics. HTTP-level request metrics come from fiberprometheus.
var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notebooklm_bridge_upstream_requests_total",
		Help: "Total number of NotebookLM calls by endpoint and HTTP status (\"error\" for transport failures)",
	}, []string{"endpoint", "status"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notebooklm_bridge_upstream_request_duration_seconds",
		Help:    "NotebookLM call latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}, // query answers can take close to the 60s timeout
	}, []string{"endpoint"})

	queryOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notebooklm_bridge_query_outcomes_total",
		Help: "Total number of /query results by outcome",
	}, []string{"outcome"}) // outcome: "success", "no_notebooks", "upstream_error", "request_error", "parse_error"

	notebookCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notebooklm_bridge_notebook_cache_lookups_total",
		Help: "Notebook list cache lookups by result",
	}, []string{"result"}) // result: "hit_local", "hit_remote", "miss"
)

// RecordQueryOutcome records how a /query call ended
func RecordQueryOutcome(outcome string) {
	queryOutcomes.WithLabelValues(outcome).Inc()
}
