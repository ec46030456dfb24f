package batch

import (
	"net/http"

	"nutriai/internal/core/recipe"
	"nutriai/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Scheduler 背景批次排程
type Scheduler interface {
	Submit(sel recipe.Selection) error
	Status() recipe.SchedulerStatus
}

// Request 批次選取條件
type Request struct {
	Mode  string  `json:"mode"`
	Limit int     `json:"limit"`
	IDs   []int64 `json:"ids"`
}

// Handler 背景批次處理器
type Handler struct {
	scheduler Scheduler
}

// NewHandler 創建背景批次處理器
func NewHandler(scheduler Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

// Submit 排入背景批次；等待數已滿時回傳 503
func (h *Handler) Submit(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	sel := recipe.Selection{Mode: recipe.Mode(req.Mode), Limit: req.Limit, IDs: req.IDs}
	if sel.Mode == "" {
		sel.Mode = recipe.ModeNew
	}
	if len(sel.IDs) > 0 {
		sel.Mode = recipe.ModeRange
	}

	if err := h.scheduler.Submit(sel); err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"accepted": true,
		"mode":     sel.Mode,
		"status":   h.scheduler.Status(),
	})
}

// Status 回傳等待隊列與最近一次批次
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Status())
}
