package mass

import (
	"context"
	"encoding/json"
	"math"

	"nutriai/internal/core/ai/cache"
	"nutriai/internal/core/textnorm"
	"nutriai/internal/core/unit"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

// Tier 換算克數時命中的層級
type Tier int

const (
	TierNone Tier = iota
	TierDirect
	TierCurated
	TierGeneric
	TierLearned
	TierEstimated
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierDirect:
		return "direct"
	case TierCurated:
		return "curated"
	case TierGeneric:
		return "generic"
	case TierLearned:
		return "learned"
	case TierEstimated:
		return "estimated"
	case TierFallback:
		return "fallback"
	}
	return "none"
}

// MarshalText 讓 JSON 輸出可讀的名稱
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Conversion 一筆食材的克數換算結果
type Conversion struct {
	Grams    float64        `json:"grams"`
	Quantity float64        `json:"quantity"`
	Unit     unit.Canonical `json:"unit"`
	Tier     Tier           `json:"tier"`
}

// UnitWeightEstimator 外部估算每單位克數；回傳 0 表示此組合不適用
type UnitWeightEstimator interface {
	EstimateUnitWeight(ctx context.Context, name string, u unit.Canonical) (float64, error)
}

type unitWeightEntry struct {
	Grams float64 `json:"grams"`
}

// Converter 依序使用 SI 換算、專屬表、通用表、學習快取與外部估算
type Converter struct {
	learner   *cache.Learner
	estimator UnitWeightEstimator
}

// NewConverter 建立換算器；store 或 estimator 可為 nil
func NewConverter(store cache.Store, estimator UnitWeightEstimator) *Converter {
	c := &Converter{estimator: estimator}
	if store != nil {
		c.learner = cache.NewLearner(store)
	}
	return c
}

// ToGrams 將數量與單位換算為克；無法解析的數量回傳 0，不視為錯誤
func (c *Converter) ToGrams(ctx context.Context, name, rawUnit, quantity string) Conversion {
	q := ParseQuantity(quantity)
	u := unit.Canonicalize(rawUnit)
	conv := Conversion{Quantity: q, Unit: u}
	if q <= 0 {
		return conv
	}

	perUnit, tier := c.GramsPerUnit(ctx, name, u)
	conv.Grams = q * perUnit
	conv.Tier = tier

	common.LogDebug("克數換算",
		zap.String("ingredient", name),
		zap.String("unit", string(u)),
		zap.Float64("quantity", q),
		zap.Float64("grams", conv.Grams),
		zap.String("tier", tier.String()),
	)
	return conv
}

// GramsPerUnit 回傳每單位克數與命中層級
func (c *Converter) GramsPerUnit(ctx context.Context, name string, u unit.Canonical) (float64, Tier) {
	if g, ok := directFactor(u); ok {
		return g, TierDirect
	}

	// 無單位或無法辨識的單位視為計數
	if u == unit.NoUnit || !u.IsKnown() {
		u = unit.Unit
	}

	normalized := textnorm.Normalize(name)
	if g, ok := curatedWeight(normalized, u); ok {
		return g, TierCurated
	}
	if g, ok := genericWeights[u]; ok {
		return g, TierGeneric
	}
	return c.learnedWeight(ctx, normalized, u)
}

func directFactor(u unit.Canonical) (float64, bool) {
	switch u {
	case unit.Gram, unit.Milliliter:
		return 1, true
	case unit.Kilogram, unit.Liter:
		return 1000, true
	}
	return 0, false
}

func curatedWeight(normalized string, u unit.Canonical) (float64, bool) {
	if g, ok := curatedWeights[curatedKey{normalized, u}]; ok {
		return g, true
	}
	singular := textnorm.SingularizePhrase(normalized)
	if g, ok := curatedWeights[curatedKey{singular, u}]; ok {
		return g, true
	}
	return 0, false
}

func validUnitWeight(raw string) bool {
	if raw == cache.IgnoreMarker {
		return true
	}
	var e unitWeightEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return false
	}
	return e.Grams > 0 && !math.IsInf(e.Grams, 0) && !math.IsNaN(e.Grams)
}

func decodeUnitWeight(raw string) float64 {
	var e unitWeightEntry
	if raw == cache.IgnoreMarker || json.Unmarshal([]byte(raw), &e) != nil {
		return 0
	}
	return e.Grams
}

// learnedWeight 第四層：學習快取，未命中時呼叫外部估算；不可用時使用保守預設值
func (c *Converter) learnedWeight(ctx context.Context, normalized string, u unit.Canonical) (float64, Tier) {
	if c.learner == nil {
		return fallbackWeight(u), TierFallback
	}
	key := cache.Key(cache.NamespaceUnitWeight, normalized+"|"+string(u))

	if raw, ok := c.learner.Lookup(ctx, key, validUnitWeight); ok {
		if g := decodeUnitWeight(raw); g > 0 {
			common.LogCacheHit(cache.NamespaceUnitWeight, key)
			return g, TierLearned
		}
		return fallbackWeight(u), TierFallback
	}

	if c.estimator == nil {
		return fallbackWeight(u), TierFallback
	}

	raw, err := c.learner.Learn(ctx, key, validUnitWeight, func(ctx context.Context) (string, error) {
		grams, err := c.estimator.EstimateUnitWeight(ctx, normalized, u)
		if err != nil {
			return "", err
		}
		if grams <= 0 {
			return cache.IgnoreMarker, nil
		}
		data, err := json.Marshal(unitWeightEntry{Grams: grams})
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
	if err != nil {
		common.LogWarn("單位重量估算不可用，使用預設值",
			zap.String("ingredient", normalized),
			zap.String("unit", string(u)),
			zap.Error(err),
		)
		return fallbackWeight(u), TierFallback
	}

	if g := decodeUnitWeight(raw); g > 0 {
		return g, TierEstimated
	}
	return fallbackWeight(u), TierFallback
}

func fallbackWeight(u unit.Canonical) float64 {
	if g, ok := fallbackWeights[u]; ok {
		return g
	}
	return fallbackWeights[unit.Unit]
}
