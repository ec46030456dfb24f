package app

import (
	"context"
	"testing"

	"nutriai/internal/core/recipe"
	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.AI.Enabled = false
	cfg.Database.DSN = ":memory:"
	cfg.Cache.Driver = "sql"
	return cfg
}

func TestNewWiresOfflineApp(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.False(t, a.Estimation.Available())

	id, err := a.Recipes.Store().SaveRecipe(ctx, recipe.NewRecipe{
		Title: "ovos mexidos",
		Ingredients: []common.IngredientRecord{
			{Name: "ovo", Quantity: "2", Unit: "unidade"},
			{Name: "manteiga", Quantity: "1", Unit: "colher de sopa"},
		},
	})
	require.NoError(t, err)

	summary, err := a.BatchRunner(config.QueueConfig{Workers: 2, MaxSize: 4}).Run(ctx, recipe.Selection{Mode: recipe.ModeNew})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)

	r, err := a.Recipes.Store().GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.True(t, r.NutrientsComputed)
}

func TestNewRejectsUnknownMetric(t *testing.T) {
	cfg := testConfig()
	cfg.Nutrition.SimilarityMetric = "cosine"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenDBUnknownDriver(t *testing.T) {
	_, err := OpenDB(context.Background(), &config.DatabaseConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}
