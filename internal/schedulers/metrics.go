package schedulers

import (
	"timelog/internal/shared/metrics"
)

var (
	metricPushRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPush,
			Name:      "runs_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
