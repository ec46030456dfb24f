package recipe

import (
	"context"
	"testing"

	"nutriai/internal/core/nutrition"
	"nutriai/internal/core/shopping"
	"nutriai/internal/pkg/common"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewStore(context.Background(), db)
	require.NoError(t, err)
	return store
}

func seed(t *testing.T, s *Store, title string, ingredients []common.IngredientRecord) int64 {
	t.Helper()
	id, err := s.SaveRecipe(context.Background(), NewRecipe{Title: title, Ingredients: ingredients})
	require.NoError(t, err)
	return id
}

func TestSaveAndGetRecipe(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRecipe(ctx, NewRecipe{
		Title:       "Omelete",
		URL:         "https://example.com/omelete",
		Ingredients: []common.IngredientRecord{{Name: "ovo", Quantity: "2", Unit: "unidade"}},
	})
	require.NoError(t, err)

	r, err := s.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Omelete", r.Title)
	assert.True(t, r.Extracted)
	assert.False(t, r.NutrientsComputed)

	ingredients, err := r.Ingredients()
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "ovo", ingredients[0].Name)
	assert.Equal(t, "2", ingredients[0].Quantity)

	totals, err := r.Totals()
	require.NoError(t, err)
	assert.Nil(t, totals)
}

func TestGetRecipeNotFound(t *testing.T) {
	_, err := newTestStore(t).GetRecipe(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListPendingModes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ovo := []common.IngredientRecord{{Name: "ovo", Quantity: "1", Unit: "unidade"}}

	a := seed(t, s, "a", ovo)
	b := seed(t, s, "b", ovo)
	c := seed(t, s, "c", ovo)
	_ = seed(t, s, "sem ingredientes", nil)
	require.NoError(t, s.SaveTotals(ctx, b, nutrition.NutrientTotals{Calories: 10}))

	ids := func(rs []Recipe) []int64 {
		out := make([]int64, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	pending, err := s.ListPending(ctx, Selection{Mode: ModeNew})
	require.NoError(t, err)
	assert.Equal(t, []int64{a, c}, ids(pending))

	pending, err = s.ListPending(ctx, Selection{Mode: ModeNew, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, ids(pending))

	all, err := s.ListPending(ctx, Selection{Mode: ModeAll})
	require.NoError(t, err)
	assert.Equal(t, []int64{a, b, c}, ids(all))

	ranged, err := s.ListPending(ctx, Selection{Mode: ModeRange, IDs: []int64{c, b}})
	require.NoError(t, err)
	assert.Equal(t, []int64{b, c}, ids(ranged))

	single, err := s.ListPending(ctx, Selection{Mode: ModeRange, IDs: []int64{a}})
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, ids(single))

	_, err = s.ListPending(ctx, Selection{Mode: ModeRange})
	assert.True(t, common.IsValidationError(err))
	_, err = s.ListPending(ctx, Selection{Mode: "later"})
	assert.True(t, common.IsValidationError(err))
}

func TestSaveTotals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := seed(t, s, "bolo", []common.IngredientRecord{{Name: "farinha de trigo", Quantity: "2", Unit: "xícara"}})

	want := nutrition.NutrientTotals{Calories: 864.5, Protein: 23.5, Fat: 3.3, Carbohydrates: 181.5, Fiber: 5.6}
	require.NoError(t, s.SaveTotals(ctx, id, want))

	r, err := s.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.True(t, r.NutrientsComputed)
	got, err := r.Totals()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	err = s.SaveTotals(ctx, id+100, want)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestIngredientListsKeepsRequestedOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seed(t, s, "a", []common.IngredientRecord{{Name: "cebola", Quantity: "1", Unit: "unidade"}})
	b := seed(t, s, "b", []common.IngredientRecord{{Name: "alho", Quantity: "2", Unit: "dentes"}})

	lists, err := s.IngredientLists(ctx, []int64{b, a})
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "alho", lists[0][0].Name)
	assert.Equal(t, "cebola", lists[1][0].Name)

	_, err = s.IngredientLists(ctx, []int64{a, 999})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSelectionBounds(t *testing.T) {
	lo, hi := Selection{IDs: []int64{7}}.Bounds()
	assert.Equal(t, int64(7), lo)
	assert.Equal(t, int64(7), hi)

	lo, hi = Selection{IDs: []int64{30, 10, 20}}.Bounds()
	assert.Equal(t, int64(10), lo)
	assert.Equal(t, int64(20), hi)
}

func TestServiceComputeAndShoppingList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	svc := NewService(s, newTestAggregator(t))

	a := seed(t, s, "omelete", []common.IngredientRecord{
		{Name: "ovo", Quantity: "2", Unit: "unidade"},
		{Name: "cebola", Quantity: "1", Unit: "unidade"},
	})
	b := seed(t, s, "refogado", []common.IngredientRecord{{Name: "cebola", Quantity: "2", Unit: "unidade"}})

	result, err := svc.ComputeRecipe(ctx, a)
	require.NoError(t, err)
	assert.True(t, result.Success)
	r, err := s.GetRecipe(ctx, a)
	require.NoError(t, err)
	assert.True(t, r.NutrientsComputed)

	_, err = svc.ComputeRecipe(ctx, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)

	items, err := svc.ShoppingList(ctx, []int64{a, b})
	require.NoError(t, err)
	assert.Contains(t, shopping.Lines(items), "- Cebola: 3 unidades")
	assert.Contains(t, shopping.Lines(items), "- Ovo: 2 unidades")

	_, err = svc.ShoppingList(ctx, nil)
	assert.True(t, common.IsValidationError(err))
}
