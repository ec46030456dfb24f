package recipe

import (
	"context"
	"strconv"

	"nutriai/internal/core/nutrition"
	"nutriai/internal/core/shopping"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 以已儲存的食譜為單位提供營養計算與購物清單
type Service struct {
	store    *Store
	computer Computer
}

// NewService 創建新的食譜服務
func NewService(store *Store, computer Computer) *Service {
	return &Service{
		store:    store,
		computer: computer,
	}
}

// Store 底層資料存取
func (s *Service) Store() *Store {
	return s.store
}

// ComputeRecipe 計算單一食譜；成功時寫回資料庫，失敗時保持原狀
func (s *Service) ComputeRecipe(ctx context.Context, id int64) (nutrition.RecipeComputationResult, error) {
	r, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nutrition.RecipeComputationResult{}, err
	}
	ingredients, err := r.Ingredients()
	if err != nil {
		return nutrition.RecipeComputationResult{}, common.ErrInvalidRequest.Wrap(err)
	}

	result := s.computer.ComputeTotals(ctx, strconv.FormatInt(id, 10), ingredients)
	if !result.Success {
		common.LogWarn("食譜營養計算失敗",
			zap.Int64("recipe_id", id),
			zap.String("ingredient", result.FailedIngredient),
			zap.Bool("estimation_unavailable", result.EstimationUnavailable),
		)
		return result, nil
	}
	if err := s.store.SaveTotals(ctx, id, result.Totals); err != nil {
		return result, err
	}
	return result, nil
}

// ShoppingList 合併多份食譜的食材
func (s *Service) ShoppingList(ctx context.Context, ids []int64) ([]shopping.LineItem, error) {
	if len(ids) == 0 {
		return nil, common.NewValidationError("at least one recipe id is required")
	}
	lists, err := s.store.IngredientLists(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := shopping.Consolidate(lists)
	common.LogDebug("購物清單已產生", zap.Int("recipes", len(ids)), zap.Int("items", len(items)))
	return items, nil
}
