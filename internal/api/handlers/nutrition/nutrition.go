package nutrition

import (
	"context"
	"net/http"
	"strconv"

	"nutriai/internal/core/nutrition"
	"nutriai/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Computer 計算一組食材的營養總量
type Computer interface {
	ComputeTotals(ctx context.Context, recipeID string, ingredients []common.IngredientRecord) nutrition.RecipeComputationResult
}

// Resolver 解析單一食材名稱
type Resolver interface {
	Resolve(ctx context.Context, name string) nutrition.Resolution
}

// RecipeComputer 計算並保存已儲存的食譜
type RecipeComputer interface {
	ComputeRecipe(ctx context.Context, id int64) (nutrition.RecipeComputationResult, error)
}

// ComputeRequest 營養計算請求；未提供 recipe_id 時自動產生
type ComputeRequest struct {
	RecipeID    string                    `json:"recipe_id,omitempty"`
	Ingredients []common.IngredientRecord `json:"ingredients" binding:"required"`
}

// ResolveRequest 食材名稱解析請求
type ResolveRequest struct {
	Name string `json:"name" binding:"required"`
}

// Handler 營養相關的 HTTP 處理器
type Handler struct {
	computer Computer
	resolver Resolver
	recipes  RecipeComputer
}

// NewHandler 創建營養處理器
func NewHandler(computer Computer, resolver Resolver, recipes RecipeComputer) *Handler {
	return &Handler{
		computer: computer,
		resolver: resolver,
		recipes:  recipes,
	}
}

// Compute 計算請求中的食材；失敗的結果仍以 200 回傳，由 success 欄位表示
func (h *Handler) Compute(c *gin.Context) {
	var req ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	if req.RecipeID == "" {
		req.RecipeID = uuid.NewString()
	}

	result := h.computer.ComputeTotals(c.Request.Context(), req.RecipeID, req.Ingredients)
	common.LogInfo("營養計算完成",
		zap.String("request_id", requestid.Get(c)),
		zap.String("recipe_id", result.RecipeID),
		zap.Int("ingredients", len(req.Ingredients)),
		zap.Bool("success", result.Success),
	)
	c.JSON(http.StatusOK, result)
}

// Resolve 回傳單一名稱的解析結果
func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, h.resolver.Resolve(c.Request.Context(), req.Name))
}

// ComputeStored 計算資料庫中的食譜並寫回結果
func (h *Handler) ComputeStored(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		common.WriteError(c, common.NewValidationError("recipe id must be a positive integer"))
		return
	}
	result, err := h.recipes.ComputeRecipe(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
