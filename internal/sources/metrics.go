package sources

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	metricSourceSelectedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "selected_total",
		},
		[]string{"result"},
	)
)

const (
	resultSelected     = "selected"
	resultNoCandidates = "no_candidates"
)
