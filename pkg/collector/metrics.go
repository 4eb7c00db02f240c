package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slurmdocs_collector_fetch_duration_seconds",
			Help:    "Time taken by remote commands",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"category"}, // cpu or node
	)

	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slurmdocs_collector_fetch_total",
			Help: "Total number of remote command attempts",
		},
		[]string{"category", "status"}, // success or error
	)
)
