package nutrition

import (
	"fmt"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultSimilarityThreshold 模糊比對的最低相似度
const DefaultSimilarityThreshold = 0.8

// Matcher 字串相似度策略，回傳 0 到 1
type Matcher interface {
	Similarity(a, b string) float64
}

type metricMatcher struct {
	metric strutil.StringMetric
}

func (m metricMatcher) Similarity(a, b string) float64 {
	return strutil.Similarity(a, b, m.metric)
}

// NewMatcher 依名稱建立相似度策略：levenshtein（預設）、jaro-winkler、sorensen-dice
func NewMatcher(name string) (Matcher, error) {
	switch name {
	case "", "levenshtein":
		return metricMatcher{metric: metrics.NewLevenshtein()}, nil
	case "jaro-winkler":
		return metricMatcher{metric: metrics.NewJaroWinkler()}, nil
	case "sorensen-dice":
		return metricMatcher{metric: metrics.NewSorensenDice()}, nil
	}
	return nil, fmt.Errorf("unknown similarity metric %q", name)
}
