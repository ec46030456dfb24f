package nutrition

import "math"

// NutrientVector 每 100 g 的營養密度（kcal、g、g、g、g）
type NutrientVector struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
}

// Valid 所有欄位皆為有限的非負數
func (v NutrientVector) Valid() bool {
	for _, f := range v.fields() {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Scale 回傳乘上 factor 的新向量
func (v NutrientVector) Scale(factor float64) NutrientVector {
	return NutrientVector{
		Calories:      v.Calories * factor,
		Protein:       v.Protein * factor,
		Fat:           v.Fat * factor,
		Carbohydrates: v.Carbohydrates * factor,
		Fiber:         v.Fiber * factor,
	}
}

func (v NutrientVector) fields() [5]float64 {
	return [5]float64{v.Calories, v.Protein, v.Fat, v.Carbohydrates, v.Fiber}
}

// NutrientTotals 一份食譜累計的營養總量
type NutrientTotals struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
}

// Accumulate 以 grams/100 為權重加入一筆營養密度
func (t *NutrientTotals) Accumulate(v NutrientVector, grams float64) {
	s := v.Scale(grams / 100)
	t.Calories += s.Calories
	t.Protein += s.Protein
	t.Fat += s.Fat
	t.Carbohydrates += s.Carbohydrates
	t.Fiber += s.Fiber
}

// IsZero 是否全部為零
func (t NutrientTotals) IsZero() bool {
	return t == NutrientTotals{}
}
