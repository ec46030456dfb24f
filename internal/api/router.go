package api

import (
	"context"
	"time"

	"nutriai/internal/api/handlers"
	batchHandler "nutriai/internal/api/handlers/batch"
	"nutriai/internal/api/handlers/health"
	nutritionHandler "nutriai/internal/api/handlers/nutrition"
	shoppingHandler "nutriai/internal/api/handlers/shopping"
	"nutriai/internal/api/middleware"
	"nutriai/internal/app"
	"nutriai/internal/core/ai/cache"
	"nutriai/internal/core/ai/queue"
	"nutriai/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由；所有業務邏輯都在 app 的核心元件中
func SetupRouter(a *app.App) *gin.Engine {
	cfg := a.Config
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.Server.RequestTimeout > 0 {
		router.Use(requestTimeout(cfg.Server.RequestTimeout))
	}

	healthH := health.NewHandler(cfg.App.Version, a.DB, a.Estimation.Available)
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)

	nutritionH := nutritionHandler.NewHandler(a.Aggregator, a.Resolver, a.Recipes)
	shoppingH := shoppingHandler.NewHandler(a.Recipes)
	scheduler := a.Scheduler()
	batchH := batchHandler.NewHandler(scheduler)
	estimationH := handlers.NewEstimationHandler(
		a.Estimation,
		a.Estimation.Gate().Reason,
		func() map[string]interface{} { return cache.Stats(a.Cache) },
		func() *queue.Status { return scheduler.Status().Batch },
	)

	v1 := router.Group("/api/v1")
	{
		nutritionGroup := v1.Group("/nutrition")
		{
			nutritionGroup.POST("/compute", nutritionH.Compute)
			nutritionGroup.POST("/resolve", nutritionH.Resolve)
		}
		v1.POST("/recipes/:id/compute", nutritionH.ComputeStored)
		v1.POST("/recipes/batch", batchH.Submit)
		v1.GET("/recipes/batch", batchH.Status)
		v1.POST("/shopping-list", shoppingH.Consolidate)
		v1.GET("/estimation/status", estimationH.Status)
	}

	common.LogInfo("Router setup completed",
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
	)
	return router
}

// requestTimeout 為每個請求的 context 設定期限，估算呼叫會隨之取消
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
