package app

import (
	"log-analyzer/internal/shared/metrics"
)

const (
	outcomeReported = "reported"
	outcomeNoSource = "no_source"
)

var (
	// metricRunsTotal counts pipeline runs. outcome is "reported", "no_source"
	// or the error code of a failed run.
	metricRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRun,
			Name:      "total",
		},
		[]string{"outcome"},
	)

	metricRunDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRun,
			Name:      "duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"outcome"},
	)
)
