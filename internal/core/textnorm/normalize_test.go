package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Açúcar Mascavo":     "acucar mascavo",
		"  LEITE   em  pó ":  "leite em po",
		"Pimentão":           "pimentao",
		"aÃ§Ãºcar":           "acucar",
		"FeijÃ£o preto":      "feijao preto",
		"cheiro-verde":       "cheiro-verde",
		"":                   "",
		"Xícara (chá)":       "xicara (cha)",
		"água":               "agua",
		"ÁGUA MORNA":         "agua morna",
		"maçã":               "maca",
		"pão de açúcar":      "pao de acucar",
		"leite condensado":   "leite condensado",
		"Queijo, requeijão,": "queijo, requeijao,",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Açúcar", "farinha de trigo", "AÇAÍ", "coração de galinha", "Ã§", "aÃ§Ãºcar",
		"pimenta-do-reino", "  espaços   extras ", "óleo de soja", "Cebola roxa média",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestRepairMojibakeLeavesCorrectTextAlone(t *testing.T) {
	assert.Equal(t, "açúcar", RepairMojibake("açúcar"))
	assert.Equal(t, "açúcar", RepairMojibake("aÃ§Ãºcar"))
	assert.Equal(t, "plain", RepairMojibake("plain"))
	// Ã 之後的位元組無法組成合法 UTF-8
	assert.Equal(t, "Ãrvore", RepairMojibake("Ãrvore"))
}

func TestStripParentheses(t *testing.T) {
	assert.Equal(t, "xicara cha", Fold(StripParentheses("xicara (chá)")))
}
