package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var lookupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bandex_store_lookup_total",
		Help: "Total number of menu store lookups by result (hit, miss, stale)",
	},
	[]string{"result"},
)
