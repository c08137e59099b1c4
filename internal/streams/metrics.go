package streams

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	metricMessagesConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "messages_consumed_total",
		},
		[]string{"stream_id"},
	)

	metricWorkerPanicsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "worker_panics_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
