package aggregators

import (
	"timelog/internal/shared/metrics"
)

var (
	// metricRecordsTotal counts parsed records by what the aggregator did with them:
	// aggregated, before_window, ignored or unroutable.
	metricRecordsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "records_total",
		},
		[]string{metrics.FieldOutcome},
	)

	// metricAggregateKeysCreatedTotal counts (endpoint, status, method) keys seen for the
	// first time within a run. Summed over runs it tracks key cardinality churn.
	metricAggregateKeysCreatedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "keys_created_total",
		},
	)
)
