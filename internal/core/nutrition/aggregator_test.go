package nutrition

import (
	"context"
	"testing"

	"nutriai/internal/core/mass"
	"nutriai/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(t *testing.T, estimator NutrientEstimator) *Aggregator {
	t.Helper()
	store := newTestStore()
	resolver := NewResolver(newTestTable(t), ResolverOptions{Store: store, Estimator: estimator})
	return NewAggregator(mass.NewConverter(store, nil), resolver, nil)
}

func TestComputeTotalsEggScenario(t *testing.T) {
	agg := newTestAggregator(t, nil)
	result := agg.ComputeTotals(context.Background(), "r1", []common.IngredientRecord{
		{Name: "ovo", Quantity: "2", Unit: "unidade"},
	})

	require.True(t, result.Success)
	assert.Equal(t, "r1", result.RecipeID)
	require.Len(t, result.Contributions, 1)
	assert.Equal(t, 100.0, result.Contributions[0].Grams)
	assert.Equal(t, mass.TierCurated, result.Contributions[0].MassTier)
	assert.Equal(t, "2 unidade ovo", result.Contributions[0].Label)

	// 100 g 即為每 100 g 向量本身
	assert.InDelta(t, 143.0, result.Totals.Calories, 1e-9)
	assert.InDelta(t, 13.0, result.Totals.Protein, 1e-9)
	assert.InDelta(t, 8.9, result.Totals.Fat, 1e-9)
	assert.InDelta(t, 1.6, result.Totals.Carbohydrates, 1e-9)
	assert.Zero(t, result.Totals.Fiber)
}

func TestComputeTotalsEmptyList(t *testing.T) {
	result := newTestAggregator(t, nil).ComputeTotals(context.Background(), "", nil)
	assert.True(t, result.Success)
	assert.True(t, result.Totals.IsZero())
}

func TestComputeTotalsBlacklistOnly(t *testing.T) {
	result := newTestAggregator(t, nil).ComputeTotals(context.Background(), "r2", []common.IngredientRecord{
		{Name: "água"},
		{Name: "sal", Quantity: "a gosto"},
	})
	assert.True(t, result.Success)
	assert.True(t, result.Totals.IsZero())
	for _, c := range result.Contributions {
		assert.Equal(t, StatusBlacklisted, c.Status)
	}
}

func TestComputeTotalsAllOrNothing(t *testing.T) {
	ingredients := []common.IngredientRecord{
		{Name: "ovo", Quantity: "2", Unit: "unidade"},
		{Name: "farinha de trigo", Quantity: "1", Unit: "xícara"},
		{Name: "tempero pronto sabor galinha caipira", Quantity: "1", Unit: "colher de sopa"},
		{Name: "açúcar", Quantity: "1/2", Unit: "xícara"},
	}

	result := newTestAggregator(t, nil).ComputeTotals(context.Background(), "r3", ingredients)
	assert.False(t, result.Success)
	assert.False(t, result.EstimationUnavailable)
	assert.Equal(t, "tempero pronto sabor galinha caipira", result.FailedIngredient)
	assert.True(t, result.Totals.IsZero())

	unavailable := &spyNutrientEstimator{err: common.ErrEstimationUnavailable}
	result = newTestAggregator(t, unavailable).ComputeTotals(context.Background(), "r3", ingredients)
	assert.False(t, result.Success)
	assert.True(t, result.EstimationUnavailable)
	assert.True(t, result.Totals.IsZero())
}

func TestComputeTotalsLabelsWithRawText(t *testing.T) {
	result := newTestAggregator(t, nil).ComputeTotals(context.Background(), "r5", []common.IngredientRecord{
		{Name: "ovo", Quantity: "2", Unit: "unidade", RawText: "2 ovos caipira"},
		{Name: "tempero pronto sabor galinha caipira", Quantity: "1", Unit: "sachê", RawText: "1 sachê de tempero"},
	})
	require.False(t, result.Success)
	require.Len(t, result.Contributions, 2)
	assert.Equal(t, "2 ovos caipira", result.Contributions[0].Label)
	assert.Equal(t, "ovo", result.Contributions[0].Name)
	assert.Equal(t, "1 sachê de tempero", result.Contributions[1].Label)
	assert.Equal(t, StatusUnresolved, result.Contributions[1].Status)
}

func TestComputeTotalsSkipsMasslessAndIgnored(t *testing.T) {
	ignore := &spyNutrientEstimator{estimate: Estimate{Ignore: true}}
	result := newTestAggregator(t, ignore).ComputeTotals(context.Background(), "r4", []common.IngredientRecord{
		{Name: "ovo", Quantity: "1", Unit: "unidade"},
		{Name: "ingrediente misterioso", Quantity: "a gosto"},
		{Name: "papel manteiga para forrar", Quantity: "1", Unit: "folha"},
	})

	require.True(t, result.Success)
	assert.InDelta(t, 71.5, result.Totals.Calories, 1e-9)
	assert.Equal(t, StatusCounted, result.Contributions[0].Status)
	assert.Equal(t, StatusNoMass, result.Contributions[1].Status)
	assert.Equal(t, StatusIgnored, result.Contributions[2].Status)
}

func TestComputeTotalsIsIdempotent(t *testing.T) {
	agg := newTestAggregator(t, nil)
	ingredients := []common.IngredientRecord{
		{Name: "Farinha de trigo", Quantity: "2 1/2", Unit: "xícaras"},
		{Name: "Ovos", Quantity: "3", Unit: "unidades"},
		{Name: "Leite", Quantity: "240", Unit: "ml"},
		{Name: "Manteiga", Quantity: "2", Unit: "colheres de sopa"},
		{Name: "Açúcar", Quantity: "1,5", Unit: "xícara"},
		{Name: "Fermento em pó", Quantity: "1", Unit: "colher de sopa"},
	}

	first := agg.ComputeTotals(context.Background(), "r5", ingredients)
	second := agg.ComputeTotals(context.Background(), "r5", ingredients)
	require.True(t, first.Success)
	assert.Equal(t, first.Totals, second.Totals)
	assert.Greater(t, first.Totals.Calories, 0.0)
}
