package handlers

import (
	"net/http"

	"nutriai/internal/core/ai/queue"

	"github.com/gin-gonic/gin"
)

// GateState 外部估算閘門狀態
type GateState interface {
	Available() bool
}

// EstimationHandler 回報外部估算是否可用，以及快取與批次隊列的概況
type EstimationHandler struct {
	gate       GateState
	reason     func() string
	cacheStats func() map[string]interface{}
	batchQueue func() *queue.Status
}

// NewEstimationHandler 創建估算狀態處理器；reason、cacheStats 與 batchQueue 可為 nil
func NewEstimationHandler(gate GateState, reason func() string, cacheStats func() map[string]interface{}, batchQueue func() *queue.Status) *EstimationHandler {
	return &EstimationHandler{gate: gate, reason: reason, cacheStats: cacheStats, batchQueue: batchQueue}
}

// Status 閘門關閉時附上原因
func (h *EstimationHandler) Status(c *gin.Context) {
	available := h.gate.Available()
	resp := gin.H{"available": available}
	if !available && h.reason != nil {
		resp["reason"] = h.reason()
	}
	if h.cacheStats != nil {
		if stats := h.cacheStats(); stats != nil {
			resp["cache"] = stats
		}
	}
	if h.batchQueue != nil {
		if status := h.batchQueue(); status != nil {
			resp["batch_queue"] = status
		}
	}
	c.JSON(http.StatusOK, resp)
}
