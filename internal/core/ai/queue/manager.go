package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

// Handler 處理一個工作；回傳錯誤只影響統計，不會停止其他工作
type Handler[T any] func(ctx context.Context, job T) error

// Status 隊列狀態
type Status struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	FailedCount    int `json:"failed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Manager 有界工作隊列與固定數量的 worker
type Manager[T any] struct {
	workers int
	maxSize int
	queue   chan T
	done    chan struct{}

	processed int64
	failed    int64

	wg        sync.WaitGroup
	closeOnce sync.Once
	startOnce sync.Once
}

// NewManager 創建新的隊列管理器
func NewManager[T any](cfg *config.QueueConfig) *Manager[T] {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = workers
	}
	return &Manager[T]{
		workers: workers,
		maxSize: maxSize,
		queue:   make(chan T, maxSize),
		done:    make(chan struct{}),
	}
}

// Start 啟動 worker；ctx 取消後 worker 會在目前工作結束時退出
func (m *Manager[T]) Start(ctx context.Context, handle Handler[T]) {
	m.startOnce.Do(func() {
		for i := 0; i < m.workers; i++ {
			m.wg.Add(1)
			go m.work(ctx, i, handle)
		}
		common.LogDebug("隊列 worker 已啟動", zap.Int("workers", m.workers))
	})
}

func (m *Manager[T]) work(ctx context.Context, id int, handle Handler[T]) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-m.queue:
			if !ok {
				return
			}
			if err := handle(ctx, job); err != nil {
				atomic.AddInt64(&m.failed, 1)
				common.LogDebug("工作處理失敗", zap.Int("worker", id), zap.Error(err))
			}
			atomic.AddInt64(&m.processed, 1)
		}
	}
}

// Enqueue 將工作加入隊列，隊列滿時等待
func (m *Manager[T]) Enqueue(ctx context.Context, job T) error {
	select {
	case <-m.done:
		return fmt.Errorf("queue manager is closed")
	default:
	}

	select {
	case m.queue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return fmt.Errorf("queue manager is closed")
	}
}

// TryEnqueue 非阻塞加入；隊列已滿時回傳 common.ErrQueueFull
func (m *Manager[T]) TryEnqueue(job T) error {
	select {
	case <-m.done:
		return fmt.Errorf("queue manager is closed")
	default:
	}

	select {
	case m.queue <- job:
		return nil
	default:
		return common.ErrQueueFull
	}
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager[T]) GetQueueStatus() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: int(atomic.LoadInt64(&m.processed)),
		FailedCount:    int(atomic.LoadInt64(&m.failed)),
		MaxQueueSize:   m.maxSize,
		Workers:        m.workers,
	}
}

// Close 停止接受新工作；已排入的工作仍會被處理，不可與 Enqueue 同時呼叫
func (m *Manager[T]) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		close(m.queue)
	})
}

// Wait 等待所有 worker 結束
func (m *Manager[T]) Wait() {
	m.wg.Wait()
}
