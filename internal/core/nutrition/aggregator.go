package nutrition

import (
	"context"

	"nutriai/internal/core/mass"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

// MassConverter 將食材數量換算為克
type MassConverter interface {
	ToGrams(ctx context.Context, name, rawUnit, quantity string) mass.Conversion
}

// NameResolver 將食材名稱解析為營養密度
type NameResolver interface {
	Resolve(ctx context.Context, name string) Resolution
}

// Status 單一食材在計算中的處理結果
type Status string

const (
	StatusCounted               Status = "counted"
	StatusBlacklisted           Status = "blacklisted"
	StatusNoMass                Status = "no_mass"
	StatusIgnored               Status = "ignored"
	StatusUnresolved            Status = "unresolved"
	StatusEstimationUnavailable Status = "estimation_unavailable"
)

// Contribution 單一食材的換算與解析紀錄
type Contribution struct {
	Name         string    `json:"name"`
	Label        string    `json:"label"`
	Grams        float64   `json:"grams"`
	MassTier     mass.Tier `json:"mass_tier"`
	NutrientTier Tier      `json:"nutrient_tier"`
	Match        string    `json:"match,omitempty"`
	Status       Status    `json:"status"`
}

// RecipeComputationResult 一份食譜的計算結果；Success 為 false 時 Totals 一律為零
type RecipeComputationResult struct {
	RecipeID              string         `json:"recipe_id,omitempty"`
	Totals                NutrientTotals `json:"totals"`
	Success               bool           `json:"success"`
	EstimationUnavailable bool           `json:"estimation_unavailable,omitempty"`
	FailedIngredient      string         `json:"failed_ingredient,omitempty"`
	Contributions         []Contribution `json:"ingredients"`
}

// Aggregator 逐一處理食材並累計營養總量，任一食材無法解析即整份失敗
type Aggregator struct {
	converter MassConverter
	resolver  NameResolver
	blacklist *Blacklist
}

// NewAggregator 建立彙總器；blacklist 為 nil 時使用內建清單
func NewAggregator(converter MassConverter, resolver NameResolver, blacklist *Blacklist) *Aggregator {
	if blacklist == nil {
		blacklist = DefaultBlacklist()
	}
	return &Aggregator{converter: converter, resolver: resolver, blacklist: blacklist}
}

// ComputeTotals 依輸入順序計算食譜總營養
func (a *Aggregator) ComputeTotals(ctx context.Context, recipeID string, ingredients []common.IngredientRecord) RecipeComputationResult {
	result := RecipeComputationResult{
		RecipeID:      recipeID,
		Contributions: make([]Contribution, 0, len(ingredients)),
	}
	var totals NutrientTotals

	for _, ing := range ingredients {
		c := Contribution{Name: ing.Name, Label: ing.Label()}

		if ing.Name == "" || a.blacklist.Match(ing.Name) {
			c.Status = StatusBlacklisted
			result.Contributions = append(result.Contributions, c)
			continue
		}

		conv := a.converter.ToGrams(ctx, ing.Name, ing.Unit, ing.Quantity)
		c.Grams = conv.Grams
		c.MassTier = conv.Tier
		if conv.Grams <= 0 {
			c.Status = StatusNoMass
			result.Contributions = append(result.Contributions, c)
			continue
		}

		res := a.resolver.Resolve(ctx, ing.Name)
		c.NutrientTier = res.Tier
		c.Match = res.Match

		switch res.Outcome {
		case OutcomeResolved:
			totals.Accumulate(res.Vector, conv.Grams)
			c.Status = StatusCounted
		case OutcomeIgnored:
			c.Status = StatusIgnored
		default:
			c.Status = StatusUnresolved
			if res.Outcome == OutcomeEstimationUnavailable {
				c.Status = StatusEstimationUnavailable
				result.EstimationUnavailable = true
			}
			result.Contributions = append(result.Contributions, c)
			result.FailedIngredient = ing.Name
			common.LogWarn("找不到食材營養資料，整份食譜不計算",
				zap.String("recipe_id", recipeID),
				zap.String("ingredient", ing.Label()),
				zap.String("outcome", res.Outcome.String()),
			)
			return result
		}
		result.Contributions = append(result.Contributions, c)
	}

	result.Totals = totals
	result.Success = true
	common.LogDebug("食譜營養計算完成",
		zap.String("recipe_id", recipeID),
		zap.Int("ingredients", len(ingredients)),
		zap.Float64("calories", totals.Calories),
	)
	return result
}
