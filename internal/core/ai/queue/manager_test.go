package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerProcessesAllJobs(t *testing.T) {
	m := NewManager[int](&config.QueueConfig{Workers: 4, MaxSize: 2})
	var sum atomic.Int64
	m.Start(context.Background(), func(ctx context.Context, job int) error {
		sum.Add(int64(job))
		if job%10 == 0 {
			return errors.New("boom")
		}
		return nil
	})

	for i := 1; i <= 100; i++ {
		require.NoError(t, m.Enqueue(context.Background(), i))
	}
	m.Close()
	m.Wait()

	assert.Equal(t, int64(5050), sum.Load())
	status := m.GetQueueStatus()
	assert.Equal(t, 100, status.ProcessedCount)
	assert.Equal(t, 10, status.FailedCount)
	assert.Equal(t, 4, status.Workers)
	assert.Equal(t, 2, status.MaxQueueSize)
}

func TestManagerTryEnqueueWhenFull(t *testing.T) {
	m := NewManager[string](&config.QueueConfig{Workers: 1, MaxSize: 1})
	require.NoError(t, m.TryEnqueue("a"))
	assert.ErrorIs(t, m.TryEnqueue("b"), common.ErrQueueFull)

	m.Close()
	assert.Error(t, m.TryEnqueue("c"))
	assert.Error(t, m.Enqueue(context.Background(), "c"))
}

func TestManagerEnqueueHonorsContext(t *testing.T) {
	m := NewManager[string](&config.QueueConfig{Workers: 1, MaxSize: 1})
	require.NoError(t, m.Enqueue(context.Background(), "a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Enqueue(ctx, "b"), context.Canceled)
}
