package parsers

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	metricLinesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParser,
			Name:      "lines_total",
		},
		[]string{"result"},
	)
)

const (
	resultParsed  = "parsed"
	resultSkipped = "skipped"
)
