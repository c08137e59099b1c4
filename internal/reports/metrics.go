package reports

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	// metricReportsRenderedTotal counts Render calls by outcome.
	metricReportsRenderedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "rendered_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricReportRowsLast = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "rows",
		},
	)
)
