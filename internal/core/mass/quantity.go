package mass

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	mixedPattern    = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)$`)
	fractionPattern = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)

	vulgarFractions = strings.NewReplacer(
		"½", " 1/2", "¼", " 1/4", "¾", " 3/4", "⅓", " 1/3", "⅔", " 2/3", "⅛", " 1/8",
	)
)

// ParseQuantity 解析數量文字：小數（逗號或點）、分數 "N/D" 與帶分數 "I N/D"；其他一律為 0
func ParseQuantity(raw string) float64 {
	s := strings.TrimSpace(vulgarFractions.Replace(strings.ToLower(raw)))
	if s == "" {
		return 0
	}

	if v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	}

	if m := mixedPattern.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.Atoi(m[1])
		return float64(whole) + fraction(m[2], m[3])
	}
	if m := fractionPattern.FindStringSubmatch(s); m != nil {
		return fraction(m[1], m[2])
	}
	return 0
}

func fraction(num, den string) float64 {
	n, _ := strconv.Atoi(num)
	d, _ := strconv.Atoi(den)
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// IsNumeric 數量文字是否能解析為正數
func IsNumeric(raw string) bool {
	return ParseQuantity(raw) > 0
}
