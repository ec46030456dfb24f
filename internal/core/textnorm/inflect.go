package textnorm

import "strings"

// 不規則或常見單位的複數 -> 單數
var singularTable = map[string]string{
	"xicaras":    "xicara",
	"colheres":   "colher",
	"dentes":     "dente",
	"unidades":   "unidade",
	"gramas":     "grama",
	"quilos":     "quilo",
	"fatias":     "fatia",
	"pitadas":    "pitada",
	"gotas":      "gota",
	"folhas":     "folha",
	"pedacos":    "pedaco",
	"saquinhos":  "saquinho",
	"cubos":      "cubo",
	"mililitros": "mililitro",
	"litros":     "litro",
	"latas":      "lata",
	"vidros":     "vidro",
	"pacotes":    "pacote",
	"macos":      "maco",
	"ramos":      "ramo",
	"cachos":     "cacho",
	"postas":     "posta",
	"raminhos":   "raminho",
	"cabecas":    "cabeca",
	"ramalhetes": "ramalhete",
	"embalagens": "embalagem",
	"paes":       "pao",
	"graos":      "grao",
	"copos":      "copo",
	"potes":      "pote",
	"tabletes":   "tablete",
	"kgs":        "kg",
	"mls":        "ml",
}

// 單數 -> 複數；g、kg、ml、l 等縮寫不變
var pluralTable = map[string]string{
	"g":         "g",
	"kg":        "kg",
	"ml":        "ml",
	"l":         "l",
	"pao":       "paes",
	"mao":       "maos",
	"grao":      "graos",
	"vez":       "vezes",
	"maco":      "macos",
	"cabeca":    "cabecas",
	"embalagem": "embalagens",
}

// 結尾看似複數但本身是單數（或單複同形）的字
var invariantWords = map[string]bool{
	"arroz":    true,
	"pires":    true,
	"gas":      true,
	"lapis":    true,
	"onibus":   true,
	"mais":     true,
	"menos":    true,
	"simples":  true,
	"tres":     true,
	"atlas":    true,
	"virus":    true,
	"tenis":    true,
	"ananas":   true,
	"brocolis": true,
	"cuscuz":   true,
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiou", b) >= 0
}

// Singularize 將字詞轉為單數：先查表，再套用葡文字尾規則
func Singularize(word string) string {
	w := Fold(word)
	if s, ok := singularTable[w]; ok {
		return s
	}
	if invariantWords[w] || len(w) <= 2 || !strings.HasSuffix(w, "s") {
		return w
	}
	switch {
	case strings.HasSuffix(w, "oes"), strings.HasSuffix(w, "aes"):
		return w[:len(w)-3] + "ao"
	case strings.HasSuffix(w, "ais"), strings.HasSuffix(w, "eis"), strings.HasSuffix(w, "ois"), strings.HasSuffix(w, "uis"):
		return w[:len(w)-2] + "l"
	case strings.HasSuffix(w, "ns"):
		return w[:len(w)-2] + "m"
	case strings.HasSuffix(w, "res"), strings.HasSuffix(w, "zes"):
		return w[:len(w)-2]
	case isVowel(w[len(w)-2]):
		return w[:len(w)-1]
	}
	return w
}

// Pluralize 依數量決定是否轉為複數；數量為 1 時維持原字
func Pluralize(word string, quantity float64) string {
	w := Fold(word)
	if quantity == 1 || w == "" {
		return w
	}
	if p, ok := pluralTable[w]; ok {
		return p
	}
	if invariantWords[w] {
		return w
	}
	last := w[len(w)-1]
	switch {
	case strings.HasSuffix(w, "ao"):
		return w[:len(w)-2] + "oes"
	case last == 'l' && len(w) > 1 && w[len(w)-2] == 'i':
		return w[:len(w)-1] + "s"
	case last == 'l' && len(w) > 1 && isVowel(w[len(w)-2]):
		return w[:len(w)-1] + "is"
	case last == 'r', last == 's', last == 'z':
		return w + "es"
	case last == 'm':
		return w[:len(w)-1] + "ns"
	case isVowel(last):
		return w + "s"
	}
	return w
}

// SingularizePhrase 逐字轉為單數
func SingularizePhrase(phrase string) string {
	words := strings.Fields(Fold(phrase))
	for i, w := range words {
		words[i] = Singularize(w)
	}
	return strings.Join(words, " ")
}
