package shopping

import (
	"regexp"
	"strings"

	"nutriai/internal/core/textnorm"
	"nutriai/internal/core/unit"
)

// 合併購物時不需區分的名稱，鍵與值皆為正規化後的文字
var aliases = map[string]string{
	"abobora italia":                "abobora",
	"abobora de pescoco":            "abobora",
	"abobora moranga":               "abobora",
	"jerimum":                       "abobora",
	"acafrao-da-terra em po":        "acafrao em po",
	"curcuma":                       "acafrao",
	"azeite extra virgem":           "azeite",
	"azeite de oliva":               "azeite",
	"azeite extravirgem":            "azeite",
	"oleo vegetal":                  "oleo",
	"oleo de girassol":              "oleo",
	"oleo de soja":                  "oleo",
	"oleo de canola":                "oleo",
	"oleo de milho":                 "oleo",
	"proteina texturizada de soja":  "proteina de soja texturizada",
	"pts":                           "proteina de soja texturizada",
	"proteina de soja":              "proteina de soja texturizada",
	"pimentao vermelho":             "pimentao",
	"pimentao verde":                "pimentao",
	"pimentao amarelo":              "pimentao",
	"arroz branco nao parborizado":  "arroz branco",
	"arroz momiji":                  "arroz japones",
	"caldo de legum":                "caldo de legumes",
	"tomat":                         "tomate",
	"tomate cereja":                 "tomate",
	"tomate italiano":               "tomate",
	"molho shoyo":                   "shoyu",
	"brocoli":                       "brocolis",
	"bracolis":                      "brocolis",
	"couveflor":                     "couve-flor",
	"couve flor":                    "couve-flor",
	"grao de bico":                  "grao-de-bico",
	"graodebico":                    "grao-de-bico",
	"batata doce":                   "batata-doce",
	"batata-doce roxa":              "batata-doce",
	"batatadoce":                    "batata-doce",
	"pimenta do reino":              "pimenta-do-reino",
	"pimentadoreino":                "pimenta-do-reino",
	"ervas finas":                   "ervas",
	"cheiro verde":                  "cheiro-verde",
	"tempero verde":                 "cheiro-verde",
	"salsinha":                      "salsa",
	"amendoim torrado":              "amendoim",
	"trigo de kibe":                 "trigo para quibe",
	"batata baroa":                  "mandioquinha",
	"batata-salsa":                  "mandioquinha",
	"champignon":                    "cogumelo",
	"shiitake":                      "cogumelo",
}

// 名稱中只描述處理方式或大小的字詞
var descriptorPattern = regexp.MustCompile(
	`\([^)]*\)|\b(?:picad[oa]s?|ralad[oa]s?|cozid[oa]s?|grandes?|pequen[oa]s?|medi[oa]s?|fresc[oa]s?|sec[oa]s?|` +
		`desidratad[oa]s?|fatiad[oa]s?|em cubos|em tiras|sem sementes?|com sementes?)\b`,
)

// 一律不列入購物清單的名稱
var alwaysIgnored = map[string]bool{"agua": true}

// 數量為「適量」時才略過的基本調味料
var toTasteBasics = []string{"sal", "tempero", "margarina", "gordura vegetal", "pimenta", "pimenta-do-reino", "oleo", "azeite"}

// Promotion 基本計數單位累積到一定數量時改以購買單位表示
type Promotion struct {
	From      unit.Canonical
	To        unit.Canonical
	PerUnit   float64 // 每個購買單位包含的基本單位數
	Threshold float64 // 超過 PerUnit*Threshold 時升級
}

var promotions = map[string]Promotion{
	"alho":  {From: unit.Clove, To: unit.Head, PerUnit: 10, Threshold: 0.7},
	"couve": {From: unit.Leaf, To: unit.Bundle, PerUnit: 12, Threshold: 0.7},
}

// canonicalName 正規化、套用別名、去掉描述詞並轉為單數
func canonicalName(raw string) string {
	name := textnorm.Normalize(raw)
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	name = descriptorPattern.ReplaceAllString(name, " ")
	name = strings.Trim(strings.Join(strings.Fields(name), " "), " ,;-")
	name = textnorm.SingularizePhrase(name)
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	return name
}

func containsWord(name, word string) bool {
	for _, w := range strings.Fields(name) {
		if w == word {
			return true
		}
	}
	return false
}

func isIgnored(name string) bool {
	for word := range alwaysIgnored {
		if containsWord(name, word) {
			return true
		}
	}
	return false
}

func isToTasteBasic(name string) bool {
	for _, basic := range toTasteBasics {
		if name == basic || strings.HasPrefix(name, basic+" ") || strings.HasSuffix(name, " "+basic) {
			return true
		}
	}
	return false
}
