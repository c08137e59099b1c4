package aggregators_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/aggregators/mocks"
	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// sliceSource replays entries and then returns io.EOF.
type sliceSource struct {
	entries []models.LogEntry
	pos     int
}

func (s *sliceSource) Next() (models.LogEntry, error) {
	if s.pos >= len(s.entries) {
		return models.LogEntry{}, io.EOF
	}
	entry := s.entries[s.pos]
	s.pos++
	return entry, nil
}

func generateEntries(n int) []models.LogEntry {
	entries := make([]models.LogEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.LogEntry{
			Path:        fmt.Sprintf("/api/v2/banner/%d", (i*7)%53),
			RequestTime: float64(i%17) * 0.013,
		})
	}
	return entries
}

func TestAggregationService_Aggregate_TwoPaths(t *testing.T) {
	t.Parallel()

	src := &sliceSource{entries: []models.LogEntry{
		{Path: "/a", RequestTime: 1.0},
		{Path: "/a", RequestTime: 2.0},
		{Path: "/a", RequestTime: 3.0},
		{Path: "/b", RequestTime: 1.0},
	}}

	result, err := aggregators.NewAggregationService(1).Aggregate(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "/a", result.Rows[0].URL)
	assert.Equal(t, 0.75, result.Rows[0].CountPerc)
	assert.Equal(t, "/b", result.Rows[1].URL)
	assert.Equal(t, models.RunTotals{TotalCount: 4, TotalTime: 7.0}, result.Totals)
}

func TestAggregationService_Aggregate_Empty(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 4} {
		workers := workers
		result, err := aggregators.NewAggregationService(workers).Aggregate(context.Background(), &sliceSource{})
		require.NoError(t, err)
		assert.Empty(t, result.Rows)
		assert.Equal(t, models.RunTotals{}, result.Totals)
	}
}

func TestAggregationService_Aggregate_PartitionedMatchesSequential(t *testing.T) {
	t.Parallel()

	entries := generateEntries(5000)

	sequential, err := aggregators.NewAggregationService(1).Aggregate(context.Background(), &sliceSource{entries: entries})
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8} {
		workers := workers
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()
			partitioned, err := aggregators.NewAggregationService(workers).Aggregate(context.Background(), &sliceSource{entries: entries})
			require.NoError(t, err)
			assert.Equal(t, sequential, partitioned)
		})
	}
}

func TestAggregationService_Aggregate_SourceErrorReturnsNoResult(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 4} {
		workers := workers
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			src := mocks.NewMockEntrySource(ctrl)
			sourceErr := svcerrors.NewInvalidInputError("PRS_1000", "malformed log line", errors.New("too few fields"))

			gomock.InOrder(
				src.EXPECT().Next().Return(models.LogEntry{Path: "/a", RequestTime: 0.1}, nil),
				src.EXPECT().Next().Return(models.LogEntry{}, sourceErr),
			)

			result, err := aggregators.NewAggregationService(workers).Aggregate(context.Background(), src)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, sourceErr)
		})
	}
}

func TestAggregationService_Aggregate_WrapsPlainSourceError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockEntrySource(ctrl)
	readErr := errors.New("disk went away")
	src.EXPECT().Next().Return(models.LogEntry{}, readErr)

	result, err := aggregators.NewAggregationService(1).Aggregate(context.Background(), src)
	assert.Nil(t, result)
	require.ErrorIs(t, err, readErr)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "AGG_9000", svcErr.Code)
}

func TestAggregationService_Aggregate_Cancelled(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 4} {
		workers := workers
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := aggregators.NewAggregationService(workers).Aggregate(ctx, &sliceSource{entries: generateEntries(100)})
			assert.Nil(t, result)
			require.ErrorIs(t, err, context.Canceled)

			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, "AGG_9001", svcErr.Code)
		})
	}
}
