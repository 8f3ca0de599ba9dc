package resolvers

import (
	"timelog/internal/shared/metrics"
)

const (
	outcomeHit        = "hit"
	outcomeMiss       = "miss"
	outcomeUnroutable = "unroutable"
)

var (
	metricCacheLookupsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubResolver,
			Name:      "cache_lookups_total",
		},
		[]string{metrics.FieldOutcome},
	)
)
