package menu

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandex_menu_cache_lookup_total",
			Help: "Total number of in-memory menu cache lookups",
		},
		[]string{"result"}, // hit or miss
	)

	prefetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bandex_menu_prefetch_duration_seconds",
			Help:    "Time taken to warm the menu cache for a set of restaurants",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)
)
