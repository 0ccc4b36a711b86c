package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "fel_data.csv", cfg.Dataset.Path)
	assert.Equal(t, "https://api.nal.usda.gov/fdc", cfg.Providers.USDA.BaseURL)
	assert.Equal(t, "https://api.edamam.com/api/nutrition-data", cfg.Providers.Edamam.BaseURL)
	assert.Equal(t, "https://api.api-ninjas.com/v1/nutrition", cfg.Providers.APINinjas.BaseURL)
	assert.Empty(t, cfg.Providers.USDA.APIKey)
	assert.Equal(t, 5.0, cfg.RateLimit.PerIPRPS)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.False(t, cfg.Vision.Enabled)
	assert.Equal(t, "us-east-1", cfg.Vision.Region)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FOODGAPP_SERVER_PORT", "9090")
	t.Setenv("FOODGAPP_SERVER_ENVIRONMENT", "production")
	t.Setenv("FOODGAPP_DATASET_PATH", "/data/foods.csv")
	t.Setenv("FOODGAPP_PROVIDERS_USDA_API_KEY", "usda-secret")
	t.Setenv("FOODGAPP_PROVIDERS_EDAMAM_APP_ID", "edamam-id")
	t.Setenv("FOODGAPP_PROVIDERS_APININJAS_API_KEY", "ninjas-secret")
	t.Setenv("FOODGAPP_RATELIMIT_BURST", "25")
	t.Setenv("FOODGAPP_VISION_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "/data/foods.csv", cfg.Dataset.Path)
	assert.Equal(t, "usda-secret", cfg.Providers.USDA.APIKey)
	assert.Equal(t, "edamam-id", cfg.Providers.Edamam.AppID)
	assert.Equal(t, "ninjas-secret", cfg.Providers.APINinjas.APIKey)
	assert.Equal(t, 25, cfg.RateLimit.Burst)
	assert.True(t, cfg.Vision.Enabled)
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	t.Setenv("FOODGAPP_RATELIMIT_BURST", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Dataset:   DatasetConfig{Path: "fel_data.csv"},
			RateLimit: RateLimitConfig{PerIPRPS: 5, Burst: 10},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validate(base()))
	})

	t.Run("empty port fails", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = ""
		assert.Error(t, validate(cfg))
	})

	t.Run("empty dataset path fails", func(t *testing.T) {
		cfg := base()
		cfg.Dataset.Path = ""
		assert.Error(t, validate(cfg))
	})

	t.Run("zero rps fails", func(t *testing.T) {
		cfg := base()
		cfg.RateLimit.PerIPRPS = 0
		assert.Error(t, validate(cfg))
	})
}
