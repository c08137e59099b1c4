package aggregators

import (
	"log-analyzer/internal/shared/metrics"
)

const (
	modeSequential  = "sequential"
	modePartitioned = "partitioned"

	streamAggregation = "aggregation"
)

var (
	// metricAggregationRunsTotal counts Aggregate calls by mode and outcome.
	metricAggregationRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "runs_total",
		},
		[]string{"mode", metrics.FieldErrorCode},
	)

	// metricAggregationPaths is the number of distinct paths of the last successful run.
	metricAggregationPaths = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "paths",
		},
	)
)
