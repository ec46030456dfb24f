package recipe

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"nutriai/internal/core/ai/queue"
	"nutriai/internal/core/nutrition"
	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const progressEvery = 100

// Computer 計算一份食譜的營養總量
type Computer interface {
	ComputeTotals(ctx context.Context, recipeID string, ingredients []common.IngredientRecord) nutrition.RecipeComputationResult
}

// Availability 外部估算是否仍可用
type Availability interface {
	Available() bool
}

// Repository 批次所需的資料存取
type Repository interface {
	ListPending(ctx context.Context, sel Selection) ([]Recipe, error)
	SaveTotals(ctx context.Context, id int64, totals nutrition.NutrientTotals) error
}

// Summary 一次批次的統計
type Summary struct {
	RunID                 string        `json:"run_id"`
	Total                 int           `json:"total"`
	Succeeded             int           `json:"succeeded"`
	Failed                int           `json:"failed"`
	EstimationUnavailable int           `json:"estimation_unavailable"`
	Invalid               int           `json:"invalid"`
	Duration              time.Duration `json:"duration"`
}

// BatchRunner 以 worker 隊列平行計算多份食譜
type BatchRunner struct {
	repo     Repository
	computer Computer
	estimate Availability
	queueCfg config.QueueConfig

	current atomic.Pointer[queue.Manager[Recipe]]
	last    atomic.Pointer[queue.Status]
}

// NewBatchRunner 建立批次執行器；estimate 可為 nil
func NewBatchRunner(repo Repository, computer Computer, estimate Availability, queueCfg config.QueueConfig) *BatchRunner {
	return &BatchRunner{
		repo:     repo,
		computer: computer,
		estimate: estimate,
		queueCfg: queueCfg,
	}
}

type counters struct {
	done        atomic.Int64
	succeeded   atomic.Int64
	failed      atomic.Int64
	unavailable atomic.Int64
	invalid     atomic.Int64
}

// Run 處理選取的食譜；成功者以交易寫入，失敗者維持未計算狀態等待下次批次
func (b *BatchRunner) Run(ctx context.Context, sel Selection) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString()}

	recipes, err := b.repo.ListPending(ctx, sel)
	if err != nil {
		return summary, err
	}
	summary.Total = len(recipes)
	logger := common.Logger.With(zap.String("run_id", summary.RunID))
	if len(recipes) == 0 {
		logger.Info("沒有符合條件的食譜", zap.String("mode", string(sel.Mode)))
		return summary, nil
	}
	logger.Info("開始批次計算",
		zap.String("mode", string(sel.Mode)),
		zap.Int("recipes", len(recipes)),
		zap.Int("workers", b.queueCfg.Workers),
	)

	var c counters
	var gateOnce sync.Once
	total := int64(len(recipes))

	q := queue.NewManager[Recipe](&b.queueCfg)
	b.current.Store(q)
	defer func() {
		b.last.Store(q.GetQueueStatus())
		b.current.Store(nil)
	}()
	q.Start(ctx, func(ctx context.Context, r Recipe) error {
		err := b.process(ctx, logger, r, &c)
		n := c.done.Add(1)
		if n%progressEvery == 0 && total > progressEvery {
			logger.Info("批次進度", zap.Int64("done", n), zap.Int64("remaining", total-n))
		}
		if b.estimate != nil && !b.estimate.Available() {
			gateOnce.Do(func() {
				logger.Warn("外部估算已停用，其餘食譜僅使用本地資料")
			})
		}
		return err
	})

	var enqueueErr error
	for _, r := range recipes {
		if err := q.Enqueue(ctx, r); err != nil {
			enqueueErr = err
			break
		}
	}
	q.Close()
	q.Wait()

	summary.Succeeded = int(c.succeeded.Load())
	summary.Failed = int(c.failed.Load())
	summary.EstimationUnavailable = int(c.unavailable.Load())
	summary.Invalid = int(c.invalid.Load())
	summary.Duration = time.Since(start)

	logger.Info("批次計算完成",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("estimation_unavailable", summary.EstimationUnavailable),
		zap.Int("invalid", summary.Invalid),
		zap.Duration("duration", summary.Duration),
	)
	if enqueueErr != nil && !errors.Is(enqueueErr, context.Canceled) {
		return summary, enqueueErr
	}
	return summary, ctx.Err()
}

// QueueStatus 執行中時回傳目前隊列狀態，否則回傳上一次批次結束時的狀態；從未執行過為 nil
func (b *BatchRunner) QueueStatus() *queue.Status {
	if q := b.current.Load(); q != nil {
		return q.GetQueueStatus()
	}
	return b.last.Load()
}

func (b *BatchRunner) process(ctx context.Context, logger *zap.Logger, r Recipe, c *counters) error {
	id := strconv.FormatInt(r.ID, 10)
	ingredients, err := r.Ingredients()
	if err != nil {
		c.invalid.Add(1)
		logger.Warn("食材資料無法解析", zap.String("recipe_id", id), zap.Error(err))
		return err
	}

	result := b.computer.ComputeTotals(ctx, id, ingredients)
	if !result.Success {
		c.failed.Add(1)
		if result.EstimationUnavailable {
			c.unavailable.Add(1)
		}
		return errors.New("computation failed at " + result.FailedIngredient)
	}

	if err := b.repo.SaveTotals(ctx, r.ID, result.Totals); err != nil {
		c.failed.Add(1)
		logger.Error("儲存營養總量失敗", zap.String("recipe_id", id), zap.Error(err))
		return err
	}
	c.succeeded.Add(1)
	logger.Debug("食譜營養已儲存",
		zap.String("recipe_id", id),
		zap.String("title", r.Title),
		zap.Float64("calories", result.Totals.Calories),
	)
	return nil
}
