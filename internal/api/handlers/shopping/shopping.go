package shopping

import (
	"context"
	"net/http"

	"nutriai/internal/core/shopping"
	"nutriai/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// RecipeLists 由已儲存的食譜產生購物清單
type RecipeLists interface {
	ShoppingList(ctx context.Context, ids []int64) ([]shopping.LineItem, error)
}

// Request 直接提供食材清單，或提供已儲存食譜的 ID
type Request struct {
	Recipes   [][]common.IngredientRecord `json:"recipes,omitempty"`
	RecipeIDs []int64                     `json:"recipe_ids,omitempty"`
}

// Response 購物清單
type Response struct {
	Lines []string            `json:"lines"`
	Items []shopping.LineItem `json:"items"`
}

// Handler 購物清單處理器
type Handler struct {
	recipes RecipeLists
}

// NewHandler 創建購物清單處理器
func NewHandler(recipes RecipeLists) *Handler {
	return &Handler{recipes: recipes}
}

// Consolidate 合併食材
func (h *Handler) Consolidate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	var items []shopping.LineItem
	switch {
	case len(req.RecipeIDs) > 0:
		var err error
		if items, err = h.recipes.ShoppingList(c.Request.Context(), req.RecipeIDs); err != nil {
			common.WriteError(c, err)
			return
		}
	case len(req.Recipes) > 0:
		items = shopping.Consolidate(req.Recipes)
	default:
		common.WriteError(c, common.NewValidationError("recipes or recipe_ids is required"))
		return
	}

	if items == nil {
		items = []shopping.LineItem{}
	}
	c.JSON(http.StatusOK, Response{Lines: shopping.Lines(items), Items: items})
}
