package aggregators

import (
	"context"
	"errors"
	"io"
	"time"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/streams"

	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type EntrySource interface {
	// Next returns the next entry, or io.EOF once the source is exhausted.
	Next() (models.LogEntry, error)
}

type AggregationService interface {
	// Aggregate drains src and returns per-path rows in first-seen order.
	// On a source error or ctx cancellation no partial result is returned.
	Aggregate(ctx context.Context, src EntrySource) (*models.AggregateResult, error)
}

type aggregationService struct {
	workers int
}

// NewAggregationService returns a sequential service for workers <= 1 and a
// path-partitioned one otherwise.
func NewAggregationService(workers int) AggregationService {
	if workers < 1 {
		workers = 1
	}
	return &aggregationService{workers: workers}
}

func (s *aggregationService) Aggregate(ctx context.Context, src EntrySource) (*models.AggregateResult, error) {
	logger := loggers.Ctx(ctx)
	mode := modeSequential
	if s.workers > 1 {
		mode = modePartitioned
	}
	logger.Debug().Msgf("started %s aggregation with %d worker(s)", mode, s.workers)
	started := time.Now()

	var (
		acc *Accumulator
		err error
	)
	if s.workers > 1 {
		acc, err = s.aggregatePartitioned(ctx, src)
	} else {
		acc, err = s.aggregateSequential(ctx, src)
	}
	if err != nil {
		code := codeInternalSourceFailed
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
		metricAggregationRunsTotal.WithLabelValues(mode, code).Inc()
		return nil, err
	}

	metricAggregationRunsTotal.WithLabelValues(mode, metrics.ValueNoError).Inc()
	metricAggregationPaths.Set(float64(acc.Len()))

	totals := acc.Totals()
	logger.Info().
		Dur(loggers.FieldDuration, time.Since(started)).
		Msgf("aggregated %d entries into %d paths", totals.TotalCount, acc.Len())
	return acc.Result(), nil
}

func (s *aggregationService) aggregateSequential(ctx context.Context, src EntrySource) (*Accumulator, error) {
	acc := NewAccumulator()
	for {
		if err := ctx.Err(); err != nil {
			return nil, errAggregationCancelled(err)
		}
		entry, err := src.Next()
		if errors.Is(err, io.EOF) {
			return acc, nil
		}
		if err != nil {
			return nil, errInternalSourceFailed(err)
		}
		acc.Record(entry)
	}
}

// aggregatePartitioned reads src on the calling goroutine and fans entries out
// by path, so each path is owned by exactly one shard.
func (s *aggregationService) aggregatePartitioned(ctx context.Context, src EntrySource) (*Accumulator, error) {
	queue := streams.NewPartitionedQueue[models.LogEntry](s.workers, streams.DefaultBuffer)
	shards := make([]*Accumulator, queue.PartitionCount())
	for i := range shards {
		shards[i] = NewAccumulator()
	}

	g, gctx := errgroup.WithContext(ctx)
	streams.Consume(gctx, g, queue, streamAggregation, func(partition int, entry models.LogEntry) error {
		shards[partition].Record(entry)
		return nil
	})

	var (
		order  []string
		totals models.RunTotals
	)
	g.Go(func() error {
		defer queue.Close()
		seen := make(map[string]struct{})
		for {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return errInternalSourceFailed(err)
			}
			if _, ok := seen[entry.Path]; !ok {
				seen[entry.Path] = struct{}{}
				order = append(order, entry.Path)
			}
			totals.TotalCount++
			totals.TotalTime += entry.RequestTime
			if err := queue.Publish(gctx, entry.Path, entry); err != nil {
				return err
			}
		}
	})

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errAggregationCancelled(ctxErr)
	}
	if err != nil {
		if _, ok := svcerrors.AsServiceError(err); ok {
			return nil, err
		}
		return nil, errInternalSourceFailed(err)
	}

	merged := NewAccumulator()
	for _, shard := range shards {
		merged.Merge(shard)
	}
	merged.restoreSourceOrder(order, totals)
	return merged, nil
}
