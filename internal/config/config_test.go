package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillnotes/reflect-api/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REFLECT_USE_MOCK_LLM", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.PrimaryModel)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.FallbackModel)
	assert.True(t, cfg.UseMockLLM)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REFLECT_USE_MOCK_LLM", "true")
	t.Setenv("REFLECT_PORT", "9999")
	t.Setenv("REFLECT_RATE_LIMIT_PER_MINUTE", "3")
	t.Setenv("REFLECT_CACHE_TTL_SECONDS", "120")
	t.Setenv("REFLECT_PROVIDER_TIMEOUT_SECONDS", "5")
	t.Setenv("REFLECT_PRIMARY_MODEL", "model-a")
	t.Setenv("REFLECT_FALLBACK_MODEL", "model-b")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 3, cfg.RateLimitPerMinute)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "model-a", cfg.PrimaryModel)
	assert.Equal(t, "model-b", cfg.FallbackModel)
}

func TestLoadRequiresProjectForRealProvider(t *testing.T) {
	t.Setenv("REFLECT_USE_MOCK_LLM", "false")
	t.Setenv("REFLECT_GCP_PROJECT", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFLECT_GCP_PROJECT")
}

func TestLoadRejectsNonPositiveLimits(t *testing.T) {
	t.Setenv("REFLECT_USE_MOCK_LLM", "true")
	t.Setenv("REFLECT_RATE_LIMIT_PER_MINUTE", "0")

	_, err := config.Load()
	require.Error(t, err)
}
