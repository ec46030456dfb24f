package app

import (
	"context"
	"fmt"
	"sync"

	"nutriai/internal/core/ai/cache"
	"nutriai/internal/core/ai/estimator"
	"nutriai/internal/core/ai/gemini"
	"nutriai/internal/core/ai/openrouter"
	"nutriai/internal/core/ai/provider"
	"nutriai/internal/core/ai/service"
	"nutriai/internal/core/mass"
	"nutriai/internal/core/nutrition"
	"nutriai/internal/core/recipe"
	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// App 組裝完成的核心元件，供 HTTP 服務與批次命令共用
type App struct {
	Config     *config.Config
	DB         *sqlx.DB
	Cache      cache.Store
	Estimation *service.Service
	Converter  *mass.Converter
	Resolver   *nutrition.Resolver
	Aggregator *nutrition.Aggregator
	Recipes    *recipe.Service

	schedulerOnce sync.Once
	scheduler     *recipe.Scheduler
}

// New 依設定建立所有元件；任何一步失敗都會釋放已建立的資源
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.DB, err = OpenDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	a.Cache, err = cache.New(ctx, &cfg.Cache, a.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	p, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Estimation = service.NewService(p, service.NewGate(), cfg.AI.MinInterval)
	est := estimator.New(a.Estimation)

	table, err := nutrition.LoadReferenceFile(cfg.Nutrition.ReferencePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference table: %w", err)
	}
	matcher, err := nutrition.NewMatcher(cfg.Nutrition.SimilarityMetric)
	if err != nil {
		return nil, err
	}

	a.Converter = mass.NewConverter(a.Cache, est)
	a.Resolver = nutrition.NewResolver(table, nutrition.ResolverOptions{
		Matcher:   matcher,
		Threshold: cfg.Nutrition.SimilarityThreshold,
		Store:     a.Cache,
		Estimator: est,
	})
	a.Aggregator = nutrition.NewAggregator(a.Converter, a.Resolver, nil)

	store, err := recipe.NewStore(ctx, a.DB)
	if err != nil {
		return nil, err
	}
	a.Recipes = recipe.NewService(store, a.Aggregator)

	common.LogInfo("核心元件已初始化",
		zap.String("database", cfg.Database.Driver),
		zap.String("cache", cfg.Cache.Driver),
		zap.Int("reference_foods", table.Len()),
		zap.String("similarity_metric", cfg.Nutrition.SimilarityMetric),
		zap.Float64("similarity_threshold", cfg.Nutrition.SimilarityThreshold),
		zap.Bool("estimation_available", a.Estimation.Available()),
	)
	return a, nil
}

// BatchRunner 建立使用共用閘門的批次執行器
func (a *App) BatchRunner(queueCfg config.QueueConfig) *recipe.BatchRunner {
	return recipe.NewBatchRunner(a.Recipes.Store(), a.Aggregator, a.Estimation, queueCfg)
}

// Scheduler 第一次呼叫時啟動背景批次排程器，之後回傳同一個實例
func (a *App) Scheduler() *recipe.Scheduler {
	a.schedulerOnce.Do(func() {
		a.scheduler = recipe.NewScheduler(a.BatchRunner(a.Config.Queue), a.Config.Queue.MaxPending)
	})
	return a.scheduler
}

// Close 依建立的反向順序釋放資源
func (a *App) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.scheduler != nil {
		a.scheduler.Close()
	}
	if a.Estimation != nil {
		keep(a.Estimation.Close())
	}
	if a.Cache != nil {
		keep(a.Cache.Close())
	}
	if a.DB != nil {
		keep(a.DB.Close())
	}
	return firstErr
}

// OpenDB 開啟 sqlite 或 postgres 連線並確認可用
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	driver := cfg.Driver
	switch driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	db, err := sqlx.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect %s database: %w", driver, err)
	}
	return db, nil
}

// newProvider 依設定選擇估算提供者；未啟用或缺少金鑰時回傳 nil，閘門將保持關閉
func newProvider(ctx context.Context, cfg *config.Config) (provider.Provider, error) {
	if !cfg.AI.Enabled {
		common.LogInfo("外部估算已停用")
		return nil, nil
	}

	switch cfg.AI.Provider {
	case "openrouter":
		if cfg.OpenRouter.APIKey == "" {
			common.LogWarn("未設定 OPENROUTER_API_KEY，外部估算不可用")
			return nil, nil
		}
		common.LogInfo("使用 OpenRouter 估算",
			zap.String("model", cfg.OpenRouter.Model),
			zap.String("api_key", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
		)
		return openrouter.NewClient(provider.Config{
			APIKey:    cfg.OpenRouter.APIKey,
			Model:     cfg.OpenRouter.Model,
			Timeout:   cfg.OpenRouter.Timeout,
			BaseURL:   cfg.OpenRouter.BaseURL,
			MaxTokens: cfg.OpenRouter.MaxTokens,
		}), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			common.LogWarn("未設定 GOOGLE_API_KEY，外部估算不可用")
			return nil, nil
		}
		client, err := gemini.NewClient(ctx, provider.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.Timeout,
		})
		if err != nil {
			return nil, err
		}
		common.LogInfo("使用 Gemini 估算", zap.String("model", cfg.Gemini.Model))
		return client, nil
	}
	return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
}
