package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Loop search metrics
	LoopAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walker",
		Subsystem: "loop",
		Name:      "attempts_total",
		Help:      "Loop construction attempts by outcome",
	}, []string{"outcome"})

	LoopSearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "walker",
		Subsystem: "loop",
		Name:      "search_seconds",
		Help:      "Duration of a full loop search",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	WalksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walker",
		Subsystem: "walks",
		Name:      "total",
		Help:      "Walk suggestions by result",
	}, []string{"result"})

	// Network cache metrics
	NetworkCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walker",
		Subsystem: "network",
		Name:      "cache_total",
		Help:      "Network cache lookups by backend and result",
	}, []string{"backend", "result"})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "walker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})
)
