package shopping

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"nutriai/internal/core/mass"
	"nutriai/internal/core/textnorm"
	"nutriai/internal/core/unit"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

// 超過此量時改以 0.5 kg / 0.5 L 為單位向上取整
const bulkThreshold = 500

// LineItem 購物清單的一行
type LineItem struct {
	Name  string   `json:"name"`
	Parts []string `json:"parts"`
}

// String 格式化為 "- Nome: partes"
func (l LineItem) String() string {
	return "- " + capitalize(l.Name) + ": " + strings.Join(l.Parts, ", ")
}

type entry struct {
	grams       float64
	ml          float64
	purchase    map[unit.Canonical]float64
	base        map[unit.Canonical]float64
	descriptive map[string]bool
}

func newEntry() *entry {
	return &entry{
		purchase:    make(map[unit.Canonical]float64),
		base:        make(map[unit.Canonical]float64),
		descriptive: make(map[string]bool),
	}
}

// Consolidate 合併多份食譜的食材為購物清單，依名稱字母排序
func Consolidate(recipes [][]common.IngredientRecord) []LineItem {
	entries := make(map[string]*entry)

	for _, ingredients := range recipes {
		for _, ing := range ingredients {
			add(entries, ing)
		}
	}

	items := make([]LineItem, 0, len(entries))
	for name, e := range entries {
		parts := format(name, e)
		if len(parts) == 0 {
			continue
		}
		items = append(items, LineItem{Name: name, Parts: parts})
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	common.LogDebug("購物清單已彙整",
		zap.Int("recipes", len(recipes)),
		zap.Int("items", len(items)),
	)
	return items
}

// Lines 將清單格式化為文字行
func Lines(items []LineItem) []string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.String()
	}
	return lines
}

func add(entries map[string]*entry, ing common.IngredientRecord) {
	raw := textnorm.Normalize(ing.Name)
	if raw == "" || isIgnored(raw) {
		return
	}

	name := canonicalName(ing.Name)
	if name == "" {
		return
	}

	quantity := mass.ParseQuantity(ing.Quantity)
	numeric := quantity > 0
	if !numeric && (isToTasteBasic(raw) || isToTasteBasic(name)) {
		return
	}

	e, ok := entries[name]
	if !ok {
		e = newEntry()
		entries[name] = e
	}

	if !numeric {
		desc := describe(ing)
		if desc == "" {
			desc = strings.TrimSpace(ing.Note)
		}
		if desc == "" {
			desc = "a gosto"
		}
		e.descriptive[desc] = true
		return
	}

	u := unit.Canonicalize(ing.Unit)
	switch u.Kind() {
	case unit.KindDiscretePurchase:
		e.purchase[u] += quantity
	case unit.KindDiscreteBase:
		e.base[u] += quantity
	case unit.KindVolume:
		ml, _ := u.Milliliters()
		e.ml += quantity * ml
	case unit.KindMass:
		g, _ := u.Grams()
		e.grams += quantity * g
	case unit.KindNone:
		// 已有購買單位（如 maço）時不再另記「unidade」
		if len(e.purchase) == 0 {
			e.purchase[unit.Unit] += quantity
		}
	default:
		e.descriptive[describe(ing)] = true
	}
}

func describe(ing common.IngredientRecord) string {
	return strings.TrimSpace(strings.TrimSpace(ing.Quantity) + " " + strings.TrimSpace(ing.Unit))
}

// format 依優先序輸出：購買單位 > 基本計數 > 重量 > 體積，文字描述附在最後
func format(name string, e *entry) []string {
	var parts []string
	covered := false

	for _, u := range sortedUnits(e.purchase) {
		if n := math.Ceil(e.purchase[u]); n > 0 {
			parts = append(parts, countPart(n, u))
			covered = true
		}
	}

	if !covered && len(e.base) > 0 {
		base := make(map[unit.Canonical]float64, len(e.base))
		for u, q := range e.base {
			base[u] = q
		}
		if p, ok := promotions[name]; ok && base[p.From] > 0 {
			total := math.Ceil(base[p.From])
			delete(base, p.From)
			if total > p.PerUnit*p.Threshold {
				parts = append(parts, countPart(math.Ceil(total/p.PerUnit), p.To))
				covered = true
			} else {
				parts = append(parts, countPart(total, p.From))
			}
		}
		for _, u := range sortedUnits(base) {
			if n := math.Ceil(base[u]); n > 0 {
				parts = append(parts, countPart(n, u))
			}
		}
	}

	if !covered && e.grams > 0 {
		parts = append(parts, bulkPart(e.grams, "g", "kg"))
		covered = true
	}
	if !covered && e.ml > 0 {
		parts = append(parts, bulkPart(e.ml, "ml", "L"))
	}

	if len(e.descriptive) > 0 {
		descs := make([]string, 0, len(e.descriptive))
		for d := range e.descriptive {
			if d != "" {
				descs = append(descs, d)
			}
		}
		sort.Strings(descs)
		if len(descs) > 0 {
			if len(parts) > 0 {
				parts = append(parts, "("+strings.Join(descs, ", ")+")")
			} else {
				parts = append(parts, descs...)
			}
		}
	}

	return dedupe(parts)
}

func countPart(n float64, u unit.Canonical) string {
	return strconv.FormatFloat(n, 'f', -1, 64) + " " + u.DisplayLabel(n)
}

// bulkPart 小量以整數輸出，大量以 0.5 為級距向上取整
func bulkPart(amount float64, small, large string) string {
	if amount > bulkThreshold {
		v := math.Ceil(amount/bulkThreshold) * 0.5
		return strconv.FormatFloat(v, 'f', -1, 64) + " " + large
	}
	return strconv.FormatFloat(math.Ceil(amount), 'f', -1, 64) + " " + small
}

func sortedUnits(m map[unit.Canonical]float64) []unit.Canonical {
	units := make([]unit.Canonical, 0, len(m))
	for u := range m {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Label() < units[j].Label() })
	return units
}

func dedupe(parts []string) []string {
	seen := make(map[string]bool, len(parts))
	out := parts[:0]
	for _, p := range parts {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
