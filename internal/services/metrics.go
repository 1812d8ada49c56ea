package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	estimatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wpc_estimates_total",
		Help: "Number of estimation requests served.",
	})
	estimateErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wpc_estimate_errors_total",
		Help: "Number of estimation requests that failed, by kind.",
	}, []string{"kind"})
	estimateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wpc_estimate_duration_seconds",
		Help:    "Latency of estimation calls.",
		Buckets: prometheus.DefBuckets,
	})
	profileReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wpc_profile_reloads_total",
		Help: "Number of successful market profile reloads.",
	})
)
