package unit

import (
	"strings"

	"nutriai/internal/core/textnorm"
)

// Canonical 正規化後的單位
type Canonical string

const (
	Gram         Canonical = "gram"
	Kilogram     Canonical = "kilogram"
	Milliliter   Canonical = "milliliter"
	Liter        Canonical = "liter"
	Cup          Canonical = "cup"
	Tablespoon   Canonical = "tablespoon"
	Teaspoon     Canonical = "teaspoon"
	Dessertspoon Canonical = "dessertspoon"
	Coffeespoon  Canonical = "coffeespoon"
	Clove        Canonical = "clove"
	Slice        Canonical = "slice"
	Pinch        Canonical = "pinch"
	Drop         Canonical = "drop"
	Leaf         Canonical = "leaf"
	Cube         Canonical = "cube"
	Unit         Canonical = "unit"
	Can          Canonical = "can"
	Jar          Canonical = "jar"
	Package      Canonical = "package"
	Bundle       Canonical = "bundle"
	Bunch        Canonical = "bunch"
	Head         Canonical = "head"
	Tablet       Canonical = "tablet"
	Portion      Canonical = "portion"
	Serving      Canonical = "serving"
	Pot          Canonical = "pot"
	CupAmerican  Canonical = "cupAmerican"
	Piece        Canonical = "piece"
	Strip        Canonical = "strip"
	NoUnit       Canonical = "no_unit"
)

// Kind 單位在購物清單上的分類
type Kind int

const (
	KindUnknown Kind = iota
	KindMass
	KindVolume
	KindDiscretePurchase
	KindDiscreteBase
	KindNone
)

type info struct {
	kind  Kind
	label string  // 葡文單數顯示名稱
	ml    float64 // 體積單位換算成毫升的係數
	grams float64 // 質量單位換算成克的係數
}

var units = map[Canonical]info{
	Gram:         {kind: KindMass, label: "g", grams: 1},
	Kilogram:     {kind: KindMass, label: "kg", grams: 1000},
	Milliliter:   {kind: KindVolume, label: "ml", ml: 1},
	Liter:        {kind: KindVolume, label: "l", ml: 1000},
	Cup:          {kind: KindVolume, label: "xicara", ml: 240},
	CupAmerican:  {kind: KindVolume, label: "copo", ml: 200},
	Tablespoon:   {kind: KindVolume, label: "colher de sopa", ml: 15},
	Dessertspoon: {kind: KindVolume, label: "colher de sobremesa", ml: 10},
	Teaspoon:     {kind: KindVolume, label: "colher de cha", ml: 5},
	Coffeespoon:  {kind: KindVolume, label: "colher de cafe", ml: 2.5},
	Can:          {kind: KindDiscretePurchase, label: "lata"},
	Jar:          {kind: KindDiscretePurchase, label: "vidro"},
	Package:      {kind: KindDiscretePurchase, label: "pacote"},
	Bundle:       {kind: KindDiscretePurchase, label: "maco"},
	Bunch:        {kind: KindDiscretePurchase, label: "cacho"},
	Head:         {kind: KindDiscretePurchase, label: "cabeca"},
	Tablet:       {kind: KindDiscretePurchase, label: "tablete"},
	Pot:          {kind: KindDiscretePurchase, label: "pote"},
	Unit:         {kind: KindDiscretePurchase, label: "unidade"},
	Clove:        {kind: KindDiscreteBase, label: "dente"},
	Leaf:         {kind: KindDiscreteBase, label: "folha"},
	Slice:        {kind: KindDiscreteBase, label: "fatia"},
	Pinch:        {kind: KindDiscreteBase, label: "pitada"},
	Drop:         {kind: KindDiscreteBase, label: "gota"},
	Cube:         {kind: KindDiscreteBase, label: "cubo"},
	Piece:        {kind: KindDiscreteBase, label: "pedaco"},
	Strip:        {kind: KindDiscreteBase, label: "tira"},
	Portion:      {kind: KindDiscreteBase, label: "porcao"},
	Serving:      {kind: KindDiscreteBase, label: "medida"},
	NoUnit:       {kind: KindNone},
}

// 已正規化（去重音、小寫、去括號）的同義詞與常見錯字
var synonyms = map[string]Canonical{
	"g": Gram, "gr": Gram, "grs": Gram, "grama": Gram, "gramo": Gram,
	"kg": Kilogram, "kilo": Kilogram, "quilo": Kilogram, "quilograma": Kilogram, "kilograma": Kilogram,
	"ml": Milliliter, "mililitro": Milliliter,
	"l": Liter, "lt": Liter, "lts": Liter, "litro": Liter,
	"xicara": Cup, "xicara de cha": Cup, "xicara cha": Cup, "xic": Cup, "xicra": Cup, "chicara": Cup,
	"xicara grande": Cup, "xicara cheia": Cup, "xicara rasa": Cup,
	"colher de sopa": Tablespoon, "colher sopa": Tablespoon, "sopa": Tablespoon, "colher": Tablespoon,
	"cs": Tablespoon, "colher grande": Tablespoon, "colher de sopa cheia": Tablespoon, "colher de sopa rasa": Tablespoon,
	"colher de cha": Teaspoon, "colher cha": Teaspoon, "colherzinha": Teaspoon, "colhercha": Teaspoon,
	"cc": Teaspoon, "colher pequena": Teaspoon, "cha": Teaspoon, "colher de cha rasa": Teaspoon,
	"colher de sobremesa": Dessertspoon, "colher sobremesa": Dessertspoon, "sobremesa": Dessertspoon,
	"colher de cafe": Coffeespoon, "colher cafe": Coffeespoon, "cafe": Coffeespoon, "colherinha de cafe": Coffeespoon,
	"dente": Clove,
	"fatia": Slice, "rodela": Slice,
	"pitada": Pinch,
	"gota": Drop,
	"folha": Leaf,
	"cubo": Cube,
	"unidade": Unit, "un": Unit, "und": Unit, "unid": Unit, "grao": Unit, "inteiro": Unit, "bola": Unit,
	"lata": Can, "latinha": Can,
	"vidro": Jar, "frasco": Jar,
	"pacote": Package, "embalagem": Package, "sache": Package, "saquinho": Package,
	"caixa": Package, "caixinha": Package, "envelope": Package, "pct": Package,
	"maco": Bundle, "ramalhete": Bundle, "ramo": Bundle, "raminho": Bundle,
	"cacho": Bunch,
	"cabeca": Head,
	"tablete": Tablet, "barra": Tablet,
	"porcao": Portion, "posta": Portion,
	"medida": Serving, "receita": Serving, "concha": Serving,
	"pote": Pot, "copinho": Pot,
	"copo": CupAmerican, "copo americano": CupAmerican, "copo de requeijao": CupAmerican,
	"pedaco": Piece, "pedacinho": Piece,
	"tira": Strip,
}

// Canonicalize 將原始單位文字對應到正規單位；無法辨識時回傳單數化後的原字
func Canonicalize(raw string) Canonical {
	s := strings.Trim(textnorm.Normalize(textnorm.StripParentheses(raw)), ". ")
	if s == "" {
		return NoUnit
	}
	if c, ok := lookup(s); ok {
		return c
	}
	singular := textnorm.SingularizePhrase(s)
	if c, ok := lookup(singular); ok {
		return c
	}
	return Canonical(singular)
}

func lookup(s string) (Canonical, bool) {
	if c, ok := synonyms[s]; ok {
		return c, true
	}
	compact := strings.Join(strings.Fields(strings.ReplaceAll(" "+s+" ", " de ", " ")), " ")
	if c, ok := synonyms[compact]; ok {
		return c, true
	}
	return "", false
}

// IsKnown 是否屬於固定的正規單位集合
func (c Canonical) IsKnown() bool {
	_, ok := units[c]
	return ok
}

// Kind 回傳單位分類；未知單位為 KindUnknown
func (c Canonical) Kind() Kind {
	if u, ok := units[c]; ok {
		return u.kind
	}
	return KindUnknown
}

// Label 葡文單數顯示名稱；未知單位回傳原字
func (c Canonical) Label() string {
	if u, ok := units[c]; ok {
		return u.label
	}
	return string(c)
}

// DisplayLabel 依數量決定單複數，多字單位只變化第一個字
func (c Canonical) DisplayLabel(quantity float64) string {
	label := c.Label()
	if label == "" {
		return ""
	}
	head, rest, found := strings.Cut(label, " ")
	head = textnorm.Pluralize(head, quantity)
	if found {
		return head + " " + rest
	}
	return head
}

// Milliliters 體積單位每單位的毫升數
func (c Canonical) Milliliters() (float64, bool) {
	u, ok := units[c]
	if !ok || u.kind != KindVolume {
		return 0, false
	}
	return u.ml, true
}

// Grams 質量單位每單位的克數
func (c Canonical) Grams() (float64, bool) {
	u, ok := units[c]
	if !ok || u.kind != KindMass {
		return 0, false
	}
	return u.grams, true
}

// IsSI 是否為可直接換算成克的 g、kg、ml、l
func (c Canonical) IsSI() bool {
	switch c {
	case Gram, Kilogram, Milliliter, Liter:
		return true
	}
	return false
}

// All 回傳所有正規單位
func All() []Canonical {
	out := make([]Canonical, 0, len(units))
	for c := range units {
		out = append(out, c)
	}
	return out
}
