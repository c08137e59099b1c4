package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"

	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/svcerrors"

	"golang.org/x/sync/errgroup"
)

// Handler processes one message taken from the given partition.
type Handler[T any] func(partition int, msg T) error

// Consume spawns one worker goroutine per partition on g.
// Each partition is a single-writer lane: its handler calls never overlap, so
// state owned by one partition needs no locking. A worker returns when its
// partition is closed and drained, when ctx is done, or on the first handler
// error. A panic in the handler is recovered and returned as SYS_9000.
func Consume[T any](ctx context.Context, g *errgroup.Group, queue *PartitionedQueue[T], stream string, handle Handler[T]) {
	for partitionIndex := 0; partitionIndex < queue.PartitionCount(); partitionIndex++ {
		partitionIndex := partitionIndex
		ch := queue.Partition(partitionIndex)
		g.Go(func() error {
			return runPartitionWorker(ctx, partitionIndex, ch, stream, handle)
		})
	}
}

func runPartitionWorker[T any](ctx context.Context, partitionIndex int, ch <-chan T, stream string, handle Handler[T]) error {
	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldPartitionId, strconv.Itoa(partitionIndex)).
		Logger()

	var consumed float64
	defer func() {
		metricMessagesConsumedTotal.WithLabelValues(stream).Add(consumed)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				logger.Debug().Msgf("partition drained after %.0f messages", consumed)
				return nil
			}
			if err := safeHandle(partitionIndex, msg, handle, &logger); err != nil {
				return err
			}
			consumed++
		}
	}
}

func safeHandle[T any](partitionIndex int, msg T, handle Handler[T], logger *loggers.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("partition worker panic recovered")

			var panicErr error
			if e, ok := r.(error); ok {
				panicErr = e
			} else {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricWorkerPanicsTotal.WithLabelValues(svcErr.Code).Inc()
			err = svcErr
		}
	}()
	return handle(partitionIndex, msg)
}
