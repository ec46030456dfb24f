package recipe

import (
	"context"
	"sync/atomic"

	"nutriai/internal/core/ai/queue"
	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

// SchedulerStatus 背景批次的排程與執行狀態
type SchedulerStatus struct {
	Pending *queue.Status `json:"pending"`
	Batch   *queue.Status `json:"batch,omitempty"`
	LastRun *Summary      `json:"last_run,omitempty"`
}

// Scheduler 在背景依序執行提交的批次；同一時間只有一個批次在跑
type Scheduler struct {
	runner  *BatchRunner
	pending *queue.Manager[Selection]
	cancel  context.CancelFunc
	lastRun atomic.Pointer[Summary]
}

// NewScheduler 建立並啟動排程器；最多保留 maxPending 個等待中的批次
func NewScheduler(runner *BatchRunner, maxPending int) *Scheduler {
	if maxPending <= 0 {
		maxPending = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		runner:  runner,
		pending: queue.NewManager[Selection](&config.QueueConfig{Workers: 1, MaxSize: maxPending}),
		cancel:  cancel,
	}
	s.pending.Start(ctx, s.run)
	return s
}

func (s *Scheduler) run(ctx context.Context, sel Selection) error {
	summary, err := s.runner.Run(ctx, sel)
	s.lastRun.Store(&summary)
	if err != nil {
		common.LogError("背景批次失敗", zap.String("run_id", summary.RunID), zap.Error(err))
	}
	return err
}

// Submit 非阻塞提交批次；選取條件無效時回傳驗證錯誤，等待數已滿時回傳 common.ErrQueueFull
func (s *Scheduler) Submit(sel Selection) error {
	if err := sel.Validate(); err != nil {
		return err
	}
	if err := s.pending.TryEnqueue(sel); err != nil {
		return err
	}
	common.LogInfo("已排入背景批次", zap.String("mode", string(sel.Mode)), zap.Int("limit", sel.Limit))
	return nil
}

// Status 回傳等待隊列、目前或上一次批次的狀態
func (s *Scheduler) Status() SchedulerStatus {
	return SchedulerStatus{
		Pending: s.pending.GetQueueStatus(),
		Batch:   s.runner.QueueStatus(),
		LastRun: s.lastRun.Load(),
	}
}

// Close 取消執行中的批次並等待 worker 結束
func (s *Scheduler) Close() {
	s.cancel()
	s.pending.Close()
	s.pending.Wait()
}
