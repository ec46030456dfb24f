package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingularize(t *testing.T) {
	cases := map[string]string{
		"colheres":   "colher",
		"xícaras":    "xicara",
		"Dentes":     "dente",
		"limões":     "limao",
		"pães":       "pao",
		"papéis":     "papel",
		"animais":    "animal",
		"embalagens": "embalagem",
		"nozes":      "noz",
		"flores":     "flor",
		"cebolas":    "cebola",
		"tomates":    "tomate",
		"arroz":      "arroz",
		"pires":      "pires",
		"gás":        "gas",
		"lápis":      "lapis",
		"ovo":        "ovo",
		"g":          "g",
	}
	for in, want := range cases {
		assert.Equal(t, want, Singularize(in), "input %q", in)
	}
}

func TestPluralize(t *testing.T) {
	cases := []struct {
		word string
		qty  float64
		want string
	}{
		{"unidade", 3, "unidades"},
		{"unidade", 1, "unidade"},
		{"colher", 2, "colheres"},
		{"limão", 2, "limoes"},
		{"embalagem", 2, "embalagens"},
		{"papel", 2, "papeis"},
		{"barril", 2, "barris"},
		{"noz", 2, "nozes"},
		{"cabeca", 2, "cabecas"},
		{"pao", 4, "paes"},
		{"g", 500, "g"},
		{"kg", 1.5, "kg"},
		{"arroz", 2, "arroz"},
		{"dente", 0.5, "dentes"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Pluralize(tc.word, tc.qty), "word %q qty %v", tc.word, tc.qty)
	}
}

func TestPluralizeInvertsSingularize(t *testing.T) {
	plurals := []string{
		"colheres", "xicaras", "dentes", "cebolas", "limoes", "embalagens",
		"papeis", "animais", "nozes", "flores", "latas", "fatias", "unidades",
		"pacotes", "folhas", "cabecas", "paes",
	}
	for _, p := range plurals {
		assert.Equal(t, p, Pluralize(Singularize(p), 2), "plural %q", p)
	}
}

func TestSingularizePhrase(t *testing.T) {
	assert.Equal(t, "tomate seco", SingularizePhrase("Tomates secos"))
	assert.Equal(t, "colher de sopa", SingularizePhrase("colheres de sopa"))
}
