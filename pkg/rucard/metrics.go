package rucard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bandex_source_request_duration_seconds",
			Help:    "Duration of calls to the menu source",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandex_source_request_total",
			Help: "Total number of calls to the menu source",
		},
		[]string{"method", "status"}, // success or error
	)

	skippedMenuTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bandex_source_skipped_menu_total",
			Help: "Total number of menu objects that could not be interpreted",
		},
	)
)
