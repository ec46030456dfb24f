package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"nutriai/internal/core/ai/cache"
	"nutriai/internal/core/textnorm"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

// Tier 營養解析命中的層級
type Tier int

const (
	TierNone Tier = iota
	TierCache
	TierSynonym
	TierExact
	TierFuzzy
	TierEstimated
)

func (t Tier) String() string {
	switch t {
	case TierCache:
		return "cache"
	case TierSynonym:
		return "synonym"
	case TierExact:
		return "exact"
	case TierFuzzy:
		return "fuzzy"
	case TierEstimated:
		return "estimated"
	}
	return "none"
}

// Outcome 解析結果種類
type Outcome int

const (
	// OutcomeResolved 取得營養密度
	OutcomeResolved Outcome = iota
	// OutcomeIgnored 已知不是可計算的食材
	OutcomeIgnored
	// OutcomeUnresolved 所有層級都找不到
	OutcomeUnresolved
	// OutcomeEstimationUnavailable 找不到且外部估算不可用
	OutcomeEstimationUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeEstimationUnavailable:
		return "estimation_unavailable"
	}
	return "unresolved"
}

// MarshalText 讓 JSON 輸出可讀的名稱
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// MarshalText 讓 JSON 輸出可讀的名稱
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Resolution 一個名稱的解析結果；只有 OutcomeResolved 時 Vector 有意義
type Resolution struct {
	Name    string         `json:"name"`
	Outcome Outcome        `json:"outcome"`
	Tier    Tier           `json:"tier"`
	Match   string         `json:"match,omitempty"`
	Score   float64        `json:"score,omitempty"`
	Vector  NutrientVector `json:"per_100g"`
}

// Estimate 外部估算的結果；Ignore 表示該名稱不是真正的食材
type Estimate struct {
	Vector NutrientVector
	Ignore bool
}

// NutrientEstimator 以名稱估算每 100 g 營養密度
type NutrientEstimator interface {
	EstimateNutrients(ctx context.Context, name string) (Estimate, error)
}

// Resolver 依序使用快取、同義詞、精確比對、模糊比對與外部估算
type Resolver struct {
	table     *Table
	matcher   Matcher
	threshold float64
	learner   *cache.Learner
	estimator NutrientEstimator
}

// ResolverOptions 建立 Resolver 的可選參數
type ResolverOptions struct {
	Matcher   Matcher
	Threshold float64
	Store     cache.Store
	Estimator NutrientEstimator
}

// NewResolver 建立解析器；未指定時使用 Levenshtein 與預設門檻
func NewResolver(table *Table, opts ResolverOptions) *Resolver {
	r := &Resolver{
		table:     table,
		matcher:   opts.Matcher,
		threshold: opts.Threshold,
		estimator: opts.Estimator,
	}
	if r.matcher == nil {
		r.matcher, _ = NewMatcher("")
	}
	if r.threshold <= 0 {
		r.threshold = DefaultSimilarityThreshold
	}
	if opts.Store != nil {
		r.learner = cache.NewLearner(opts.Store)
	}
	return r
}

// Resolve 解析名稱的營養密度；找不到不是錯誤，以 Outcome 表示
func (r *Resolver) Resolve(ctx context.Context, name string) Resolution {
	key := textnorm.Normalize(name)
	res := Resolution{Name: key, Outcome: OutcomeUnresolved}
	if key == "" {
		return res
	}
	cacheKey := cache.Key(cache.NamespaceNutrient, key)

	if r.learner != nil {
		if raw, ok := r.learner.Lookup(ctx, cacheKey, validCachedVector); ok {
			common.LogCacheHit(cache.NamespaceNutrient, key)
			return fromCached(res, raw, TierCache)
		}
	}

	if target, ok := synonymTarget(key); ok {
		if food, ok := r.table.Lookup(target); ok {
			return resolved(res, food, TierSynonym, 1)
		}
	}

	if food, ok := r.table.Lookup(key); ok {
		return resolved(res, food, TierExact, 1)
	}

	if food, score, ok := r.table.BestMatch(key, r.matcher, r.threshold); ok {
		common.LogDebug("模糊比對成功",
			zap.String("ingredient", key),
			zap.String("match", food.Name),
			zap.Float64("score", score),
		)
		return resolved(res, food, TierFuzzy, score)
	}

	return r.estimate(ctx, res, cacheKey)
}

func (r *Resolver) estimate(ctx context.Context, res Resolution, cacheKey string) Resolution {
	if r.estimator == nil {
		return res
	}

	derive := func(ctx context.Context) (string, error) {
		est, err := r.estimator.EstimateNutrients(ctx, res.Name)
		if err != nil {
			return "", err
		}
		if est.Ignore {
			return cache.IgnoreMarker, nil
		}
		if !est.Vector.Valid() {
			return "", common.ErrEstimationUnavailable.Wrap(errors.New("estimated nutrient vector is invalid"))
		}
		data, err := json.Marshal(est.Vector)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var raw string
	var err error
	if r.learner != nil {
		raw, err = r.learner.Learn(ctx, cacheKey, validCachedVector, derive)
	} else {
		raw, err = derive(ctx)
	}
	if err != nil {
		common.LogWarn("營養估算不可用",
			zap.String("ingredient", res.Name),
			zap.Error(err),
		)
		res.Outcome = OutcomeEstimationUnavailable
		return res
	}
	return fromCached(res, raw, TierEstimated)
}

func resolved(res Resolution, food Food, tier Tier, score float64) Resolution {
	res.Outcome = OutcomeResolved
	res.Tier = tier
	res.Match = food.Name
	res.Score = score
	res.Vector = food.Vector
	return res
}

func fromCached(res Resolution, raw string, tier Tier) Resolution {
	res.Tier = tier
	if raw == cache.IgnoreMarker {
		res.Outcome = OutcomeIgnored
		return res
	}
	v, ok := decodeCachedVector(raw)
	if !ok {
		res.Outcome = OutcomeUnresolved
		return res
	}
	res.Outcome = OutcomeResolved
	res.Vector = v
	return res
}

func validCachedVector(raw string) bool {
	if raw == cache.IgnoreMarker {
		return true
	}
	_, ok := decodeCachedVector(raw)
	return ok
}

// cachedVector 五個欄位都必須出現
type cachedVector struct {
	Calories      *float64 `json:"calories"`
	Protein       *float64 `json:"protein"`
	Fat           *float64 `json:"fat"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Fiber         *float64 `json:"fiber"`
}

// decodeCachedVector 解析快取中的營養密度；null、缺欄位或多餘欄位都視為損毀
func decodeCachedVector(raw string) (NutrientVector, bool) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	var c *cachedVector
	if err := dec.Decode(&c); err != nil || c == nil {
		return NutrientVector{}, false
	}
	if dec.More() {
		return NutrientVector{}, false
	}
	if c.Calories == nil || c.Protein == nil || c.Fat == nil || c.Carbohydrates == nil || c.Fiber == nil {
		return NutrientVector{}, false
	}
	v := NutrientVector{
		Calories:      *c.Calories,
		Protein:       *c.Protein,
		Fat:           *c.Fat,
		Carbohydrates: *c.Carbohydrates,
		Fiber:         *c.Fiber,
	}
	return v, v.Valid()
}
