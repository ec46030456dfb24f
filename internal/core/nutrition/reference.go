package nutrition

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"nutriai/internal/core/textnorm"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

//go:embed data/taco.csv
var defaultReference []byte

var referenceColumns = []string{"alimento", "calorias", "proteina", "lipideos", "carboidratos", "fibras"}

// Food 參考表中的一筆食物
type Food struct {
	Name   string         `json:"name"`
	Key    string         `json:"-"`
	Vector NutrientVector `json:"per_100g"`
}

// Table 以正規化名稱索引的營養成分參考表，載入後唯讀
type Table struct {
	byKey map[string]Food
	keys  []string
}

// LoadDefaultReference 載入內嵌的 TACO 資料
func LoadDefaultReference() (*Table, error) {
	return LoadReference(bytes.NewReader(defaultReference))
}

// LoadReferenceFile 從檔案載入；path 為空時使用內嵌資料
func LoadReferenceFile(path string) (*Table, error) {
	if path == "" {
		return LoadDefaultReference()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference table: %w", err)
	}
	defer f.Close()
	return LoadReference(f)
}

// LoadReference 讀取 alimento,calorias,proteina,lipideos,carboidratos,fibras 格式的 CSV；
// 非數值欄位視為 0，沒有熱量的列（分類標題）略過
func LoadReference(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read reference header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	t := &Table{byKey: make(map[string]Food)}
	dropped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reference row: %w", err)
		}
		food, ok := parseFood(record, index)
		if !ok {
			dropped++
			continue
		}
		if _, exists := t.byKey[food.Key]; exists {
			continue
		}
		t.byKey[food.Key] = food
		t.keys = append(t.keys, food.Key)
	}
	if len(t.keys) == 0 {
		return nil, fmt.Errorf("reference table is empty")
	}
	sort.Strings(t.keys)

	common.LogInfo("營養參考表已載入",
		zap.Int("foods", len(t.keys)),
		zap.Int("dropped_rows", dropped),
	)
	return t, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[textnorm.Normalize(h)] = i
	}
	for _, col := range referenceColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("reference table missing column %q", col)
		}
	}
	return index, nil
}

func parseFood(record []string, index map[string]int) (Food, bool) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	name := strings.TrimSpace(cell("alimento"))
	calories, ok := parseNumber(cell("calorias"))
	if name == "" || !ok {
		return Food{}, false
	}
	number := func(col string) float64 {
		v, _ := parseNumber(cell(col))
		return v
	}
	return Food{
		Name: name,
		Key:  textnorm.Normalize(name),
		Vector: NutrientVector{
			Calories:      calories,
			Protein:       number("proteina"),
			Fat:           number("lipideos"),
			Carbohydrates: number("carboidratos"),
			Fiber:         number("fibras"),
		},
	}, true
}

// parseNumber 解析欄位數值；NA、Tr、空白與負數都不是有效值
func parseNumber(raw string) (float64, bool) {
	s := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Lookup 以正規化名稱精確查詢
func (t *Table) Lookup(key string) (Food, bool) {
	f, ok := t.byKey[key]
	return f, ok
}

// Keys 依字母排序的正規化名稱
func (t *Table) Keys() []string {
	return t.keys
}

// Len 食物筆數
func (t *Table) Len() int {
	return len(t.keys)
}

// BestMatch 在名稱索引中找出最相似的項目，分數低於 threshold 時視為沒有
func (t *Table) BestMatch(key string, m Matcher, threshold float64) (Food, float64, bool) {
	best, bestScore := "", -1.0
	for _, k := range t.keys {
		if score := m.Similarity(key, k); score > bestScore {
			best, bestScore = k, score
		}
	}
	if best == "" || bestScore < threshold {
		return Food{}, bestScore, false
	}
	return t.byKey[best], bestScore, true
}
