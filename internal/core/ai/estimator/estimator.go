package estimator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"nutriai/internal/core/ai/service"
	"nutriai/internal/core/nutrition"
	"nutriai/internal/core/unit"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

const ignoreReply = "IGNORE"

const nutrientPrompt = `Forneça a informação nutricional para 100 gramas de "%s". ` +
	`Responda APENAS com um único objeto JSON com as chaves "calorias", "proteina", "lipideos", "carboidratos" e "fibras", todos numéricos. ` +
	`Se não for um ingrediente comestível (utensílio, título, marca, água, sal), responda APENAS com "IGNORE".`

const unitWeightPrompt = `Quantos gramas pesa 1 %s de "%s"? ` +
	`Responda APENAS com um único objeto JSON no formato {"gramas": número}. ` +
	`Se a combinação não fizer sentido, responda APENAS com "IGNORE".`

// Requester 送出提示並取得模型回覆
type Requester interface {
	ProcessRequest(ctx context.Context, prompt string) (*service.Response, error)
}

// Estimator 透過語言模型估算營養密度與單位重量
type Estimator struct {
	requester Requester
}

// New 建立估算器
func New(requester Requester) *Estimator {
	return &Estimator{requester: requester}
}

// EstimateNutrients 估算每 100 g 營養密度；模型判定不是食材時回傳 Ignore
func (e *Estimator) EstimateNutrients(ctx context.Context, name string) (nutrition.Estimate, error) {
	resp, err := e.requester.ProcessRequest(ctx, fmt.Sprintf(nutrientPrompt, name))
	if err != nil {
		return nutrition.Estimate{}, err
	}
	if isIgnore(resp.Content) {
		return nutrition.Estimate{Ignore: true}, nil
	}

	fields, ignore, err := decodeObject(resp.Content)
	if err != nil {
		return nutrition.Estimate{}, err
	}
	if ignore {
		return nutrition.Estimate{Ignore: true}, nil
	}

	found := 0
	read := func(keys ...string) float64 {
		f, ok := number(fields, keys...)
		if ok {
			found++
		}
		return f
	}
	v := nutrition.NutrientVector{
		Calories:      read("calorias", "calories", "kcal"),
		Protein:       read("proteina", "protein", "proteinas"),
		Fat:           read("lipideos", "fat", "gordura", "gorduras"),
		Carbohydrates: read("carboidratos", "carbohydrates", "carboidrato"),
		Fiber:         read("fibras", "fiber", "fibra"),
	}
	if found == 0 {
		return nutrition.Estimate{}, common.ErrEstimationUnavailable.Wrap(fmt.Errorf("no nutrient keys in reply for %q", name))
	}
	if !v.Valid() {
		return nutrition.Estimate{}, common.ErrEstimationUnavailable.Wrap(fmt.Errorf("invalid nutrient values for %q", name))
	}
	// 全部為零代表模型認為沒有營養資料
	if v == (nutrition.NutrientVector{}) {
		return nutrition.Estimate{Ignore: true}, nil
	}

	common.LogInfo("已估算營養密度",
		zap.String("ingredient", name),
		zap.Float64("calories", v.Calories),
	)
	return nutrition.Estimate{Vector: v}, nil
}

// EstimateUnitWeight 估算每單位克數；回傳 0 表示不適用
func (e *Estimator) EstimateUnitWeight(ctx context.Context, name string, u unit.Canonical) (float64, error) {
	resp, err := e.requester.ProcessRequest(ctx, fmt.Sprintf(unitWeightPrompt, u.Label(), name))
	if err != nil {
		return 0, err
	}
	if isIgnore(resp.Content) {
		return 0, nil
	}

	fields, ignore, err := decodeObject(resp.Content)
	if err != nil {
		return 0, err
	}
	if ignore {
		return 0, nil
	}
	grams, ok := number(fields, "gramas", "grams", "peso")
	if !ok {
		return 0, common.ErrEstimationUnavailable.Wrap(fmt.Errorf("no unit weight in reply for %q", name))
	}
	if grams < 0 || math.IsNaN(grams) || math.IsInf(grams, 0) {
		return 0, common.ErrEstimationUnavailable.Wrap(fmt.Errorf("invalid unit weight for %q", name))
	}

	common.LogInfo("已估算單位重量",
		zap.String("ingredient", name),
		zap.String("unit", string(u)),
		zap.Float64("grams", grams),
	)
	return grams, nil
}

func isIgnore(content string) bool {
	s := strings.Trim(strings.TrimSpace(content), "\"'`.")
	return strings.EqualFold(s, ignoreReply)
}

// decodeObject 擷取回覆中的 JSON 物件，必要時補上鍵的引號；{"ignore": true} 回報 ignore
func decodeObject(content string) (map[string]interface{}, bool, error) {
	raw, err := common.ExtractJSONObject(content)
	if err != nil {
		return nil, false, common.ErrEstimationUnavailable.Wrap(err)
	}
	var fields map[string]interface{}
	if err := common.ParseJSON(raw, &fields); err != nil {
		if err := common.ParseJSON(common.QuoteJSONKeys(raw), &fields); err != nil {
			return nil, false, common.ErrEstimationUnavailable.Wrap(fmt.Errorf("malformed estimation reply: %w", err))
		}
	}
	if ignore, ok := fields["ignore"].(bool); ok && ignore {
		return nil, true, nil
	}
	return fields, false, nil
}

// number 讀取第一個存在的鍵；接受數字或數字字串，找不到或無法解析時 ok 為 false
func number(fields map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		case float64:
			return n, true
		case string:
			f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(n), ",", ".", 1), 64)
			if err == nil {
				return f, true
			}
		}
		return 0, false
	}
	return 0, false
}
