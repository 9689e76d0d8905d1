// Package metrics exposes Prometheus counters/histograms for request
// duration and rate-limit rejections, mirroring the promhttp wiring a
// gateway binary commonly exposes at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration buckets handler latency by route and status class.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_request_duration_seconds",
		Help:    "HTTP request duration in seconds, by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})

	// RateLimitRejections counts 429s, by tier (global or per-key).
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_rate_limit_rejections_total",
		Help: "Count of requests rejected by the rate limiter, by tier.",
	}, []string{"tier"})

	// EngineBridgeCalls counts enginebridge dispatches, by outcome.
	EngineBridgeCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_engine_bridge_calls_total",
		Help: "Count of engine bridge dispatches, by outcome.",
	}, []string{"outcome"})
)
