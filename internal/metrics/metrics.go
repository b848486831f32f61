package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Provider operation metrics
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subfetch_searches_total",
			Help: "Total number of subtitle searches.",
		},
		[]string{"provider", "status"},
	)

	DownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subfetch_downloads_total",
			Help: "Total number of subtitle downloads.",
		},
		[]string{"provider", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		SearchesTotal,
		DownloadsTotal,
	)
}
