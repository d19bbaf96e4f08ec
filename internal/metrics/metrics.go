package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParseRequestsTotal tracks parse requests by final outcome
	ParseRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventflow_parse_requests_total",
			Help: "Total number of parse requests processed",
		},
		[]string{"outcome"},
	)

	// ParseErrorsTotal tracks classified parse failures
	ParseErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventflow_parse_errors_total",
			Help: "Total number of parse failures by error type",
		},
		[]string{"error_type"},
	)

	// RecoveriesTotal tracks which recovery strategy resolved a request
	RecoveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventflow_recoveries_total",
			Help: "Total number of requests resolved per recovery strategy",
		},
		[]string{"strategy"},
	)

	// LaunchAttemptsTotal tracks calendar launch attempts per strategy
	LaunchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventflow_launch_attempts_total",
			Help: "Total number of calendar launch attempts",
		},
		[]string{"strategy", "outcome"},
	)

	// ParseLatency tracks remote parser call latency
	ParseLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventflow_parse_latency_seconds",
			Help:    "Remote parser call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CachedRequests tracks the replay queue depth
	CachedRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventflow_cached_requests",
			Help: "Number of parse requests queued for replay",
		},
	)

	// ReplaysTotal tracks background replay attempts
	ReplaysTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventflow_replays_total",
			Help: "Total number of background replay attempts",
		},
		[]string{"outcome"},
	)
)
