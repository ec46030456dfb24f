package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"nutriai/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 可檢查連線的依賴，例如資料庫
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Version    string                 `json:"version"`
	Estimation bool                   `json:"estimation_available"`
	Runtime    map[string]interface{} `json:"runtime"`
}

// Handler 健康檢查處理器
type Handler struct {
	version   string
	db        Pinger
	available func() bool
}

// NewHandler 創建健康檢查處理器；db 與 available 可為 nil
func NewHandler(version string, db Pinger, available func() bool) *Handler {
	return &Handler{version: version, db: db, available: available}
}

// HealthCheck 回傳版本與執行期資訊
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now(),
		Version:    h.version,
		Estimation: h.available != nil && h.available(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	common.LogDebug("Health check request", zap.String("client_ip", c.ClientIP()))
	c.JSON(http.StatusOK, resp)
}

// ReadinessCheck 資料庫無法連線時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			common.LogWarn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
