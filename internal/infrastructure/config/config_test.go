package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, validateConfig(cfg))
	assert.Equal(t, "sql", cfg.Cache.Driver)
	assert.Equal(t, 0.8, cfg.Nutrition.SimilarityThreshold)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memory")
	t.Setenv("AI_PROVIDER", "openrouter")
	t.Setenv("OPENROUTER_API_KEY", "sk-test-123456789")
	t.Setenv("APP_QUEUE_WORKERS", "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "openrouter", cfg.AI.Provider)
	assert.Equal(t, "sk-test-123456789", cfg.OpenRouter.APIKey)
	assert.Equal(t, 8, cfg.Queue.Workers)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Cache.Driver = "disk"
	assert.Error(t, validateConfig(cfg))

	cfg = Default()
	cfg.Nutrition.SimilarityThreshold = 1.5
	assert.Error(t, validateConfig(cfg))

	cfg = Default()
	cfg.Nutrition.SimilarityMetric = "cosine"
	assert.Error(t, validateConfig(cfg))

	cfg = Default()
	cfg.AI.Provider = "unknown"
	assert.Error(t, validateConfig(cfg))

	cfg = Default()
	cfg.AI.Enabled = false
	cfg.AI.Provider = "unknown"
	assert.NoError(t, validateConfig(cfg))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "sk-t...6789", MaskAPIKey("sk-test-123456789"))
}
