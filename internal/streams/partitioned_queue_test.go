package streams

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"log-analyzer/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestPartitionedQueue_SameKeySamePartition(t *testing.T) {
	queue := NewPartitionedQueue[int](4, 16)

	for i := 0; i < 8; i++ {
		require.NoError(t, queue.Publish(context.Background(), "/api/v1/users", i))
	}
	queue.Close()

	nonEmpty := 0
	for p := 0; p < queue.PartitionCount(); p++ {
		var got []int
		for msg := range queue.Partition(p) {
			got = append(got, msg)
		}
		if len(got) > 0 {
			nonEmpty++
			assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, got)
		}
	}
	assert.Equal(t, 1, nonEmpty)
}

func TestPartitionedQueue_MinimumOnePartition(t *testing.T) {
	queue := NewPartitionedQueue[string](0, 1)
	assert.Equal(t, 1, queue.PartitionCount())
}

func TestPartitionedQueue_PublishHonoursContext(t *testing.T) {
	queue := NewPartitionedQueue[int](1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := queue.Publish(ctx, "k", 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPartitionedQueue_CloseTwice(t *testing.T) {
	queue := NewPartitionedQueue[int](2, 1)
	queue.Close()
	assert.NotPanics(t, queue.Close)
}

func TestConsume_DrainsEveryPartition(t *testing.T) {
	queue := NewPartitionedQueue[string](3, 4)
	g, ctx := errgroup.WithContext(context.Background())

	var mu sync.Mutex
	seen := map[string]int{}
	Consume(ctx, g, queue, "test", func(partition int, msg string) error {
		mu.Lock()
		defer mu.Unlock()
		seen[msg]++
		return nil
	})

	g.Go(func() error {
		defer queue.Close()
		for i := 0; i < 50; i++ {
			if err := queue.Publish(ctx, fmt.Sprintf("/p%d", i%7), fmt.Sprintf("m%d", i)); err != nil {
				return err
			}
		}
		return nil
	})

	require.NoError(t, g.Wait())
	assert.Len(t, seen, 50)
}

func TestConsume_HandlerErrorStopsGroup(t *testing.T) {
	queue := NewPartitionedQueue[int](2, 4)
	g, ctx := errgroup.WithContext(context.Background())
	boom := errors.New("boom")

	Consume(ctx, g, queue, "test", func(partition int, msg int) error {
		return boom
	})
	g.Go(func() error {
		defer queue.Close()
		for i := 0; i < 100; i++ {
			if err := queue.Publish(ctx, fmt.Sprint(i), i); err != nil {
				return nil
			}
		}
		return nil
	})

	assert.ErrorIs(t, g.Wait(), boom)
}

func TestConsume_PanicIsRecovered(t *testing.T) {
	queue := NewPartitionedQueue[int](1, 1)
	g, ctx := errgroup.WithContext(context.Background())

	Consume(ctx, g, queue, "test", func(partition int, msg int) error {
		panic("unexpected")
	})
	require.NoError(t, queue.Publish(ctx, "k", 1))
	queue.Close()

	err := g.Wait()
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "SYS_9000", svcErr.Code)
}
