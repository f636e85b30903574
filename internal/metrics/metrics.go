package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks outbound API requests per host
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deltaquery_requests_total",
			Help: "Total number of outbound API requests",
		},
		[]string{"host"},
	)

	// RequestErrorsTotal tracks terminal request failures by kind
	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deltaquery_request_errors_total",
			Help: "Total number of terminal request failures",
		},
		[]string{"host", "kind"},
	)

	// RetriesTotal tracks retry attempts per host
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deltaquery_retries_total",
			Help: "Total number of request retry attempts",
		},
		[]string{"host"},
	)

	// CacheHitsTotal tracks responses served from the response cache
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deltaquery_cache_hits_total",
			Help: "Total number of responses served from cache",
		},
	)

	// RequestLatency tracks end-to-end request latency
	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deltaquery_request_latency_seconds",
			Help:    "Outbound request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host"},
	)

	// PipelineRunsTotal tracks pipeline runs by descriptor and result
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deltaquery_pipeline_runs_total",
			Help: "Total number of query pipeline runs",
		},
		[]string{"descriptor", "result"},
	)
)
