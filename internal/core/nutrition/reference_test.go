package nutrition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultReference(t *testing.T) {
	table, err := LoadDefaultReference()
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 100)

	egg, ok := table.Lookup("ovo, de galinha, inteiro, cru")
	require.True(t, ok)
	assert.Equal(t, "Ovo, de galinha, inteiro, cru", egg.Name)
	assert.Equal(t, 143.0, egg.Vector.Calories)

	// 分類標題沒有熱量，不會被載入
	_, ok = table.Lookup("cereais e derivados")
	assert.False(t, ok)

	// 每個同義詞都必須指向存在的項目
	for colloquial := range synonyms {
		target, ok := synonymTarget(colloquial)
		require.True(t, ok, colloquial)
		_, ok = table.Lookup(target)
		assert.True(t, ok, "%s -> %s", colloquial, target)
	}
}

func TestLoadReferenceCoercesCells(t *testing.T) {
	csvData := `fibras,alimento,calorias,proteina,lipideos,carboidratos
NA,Miscelâneas,NA,NA,NA,NA
Tr,"Açúcar, cristal",387,"0,3",Tr,99.6
,"Sem calorias",Tr,1,1,1
2,"Açúcar, cristal",1,1,1,1
`
	table, err := LoadReference(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	sugar, ok := table.Lookup("acucar, cristal")
	require.True(t, ok)
	assert.Equal(t, NutrientVector{Calories: 387, Protein: 0.3, Carbohydrates: 99.6}, sugar.Vector)
}

func TestLoadReferenceRejectsMissingColumns(t *testing.T) {
	_, err := LoadReference(strings.NewReader("alimento,calorias\nx,1\n"))
	assert.Error(t, err)

	_, err = LoadReference(strings.NewReader("alimento,calorias,proteina,lipideos,carboidratos,fibras\n"))
	assert.Error(t, err)
}

func TestBestMatchThreshold(t *testing.T) {
	table, err := LoadDefaultReference()
	require.NoError(t, err)
	m, err := NewMatcher("levenshtein")
	require.NoError(t, err)

	food, score, ok := table.BestMatch("farinha, de trgo", m, DefaultSimilarityThreshold)
	require.True(t, ok)
	assert.Equal(t, "Farinha, de trigo", food.Name)
	assert.GreaterOrEqual(t, score, DefaultSimilarityThreshold)

	_, score, ok = table.BestMatch("tempero pronto sabor galinha caipira", m, DefaultSimilarityThreshold)
	assert.False(t, ok)
	assert.Less(t, score, DefaultSimilarityThreshold)
}

func TestNewMatcher(t *testing.T) {
	for _, name := range []string{"", "levenshtein", "jaro-winkler", "sorensen-dice"} {
		m, err := NewMatcher(name)
		require.NoError(t, err, name)
		assert.InDelta(t, 1.0, m.Similarity("cebola, crua", "cebola, crua"), 1e-9, name)
	}
	_, err := NewMatcher("soundex")
	assert.Error(t, err)
}

func TestBlacklist(t *testing.T) {
	b := DefaultBlacklist()
	for _, name := range []string{"Água", "sal", "Sal a gosto", "água morna", "Cravo-da-índia", "sal q.b.", "gelo picado"} {
		assert.True(t, b.Match(name), name)
	}
	for _, name := range []string{"salsa", "salsinha", "açúcar", "canela", "cebola", "gelatina"} {
		assert.False(t, b.Match(name), name)
	}

	var empty *Blacklist
	assert.False(t, empty.Match("sal"))
	assert.False(t, NewBlacklist(nil).Match("sal"))
}
