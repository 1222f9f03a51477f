// Package config provides environment-backed configuration for the
// reflection service. All keys are prefixed REFLECT_, e.g.
// REFLECT_RATE_LIMIT_PER_MINUTE or REFLECT_CACHE_TTL_SECONDS.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "REFLECT_"

type Config struct {
	Port     string
	LogLevel string

	// Rate limiting. The window itself is fixed at 60s.
	RateLimitPerMinute int

	CacheTTL        time.Duration
	ProviderTimeout time.Duration

	PrimaryModel  string
	FallbackModel string

	UseMockLLM  bool
	GCPProject  string
	GCPLocation string
}

// Load reads the environment and builds the config, applying defaults for
// anything unset.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{
		Port:               "8080",
		LogLevel:           "info",
		RateLimitPerMinute: 10,
		CacheTTL:           3600 * time.Second,
		ProviderTimeout:    30 * time.Second,
		PrimaryModel:       "gemini-2.5-flash",
		FallbackModel:      "gemini-2.5-flash-lite",
		GCPLocation:        "us-central1",
	}

	if v := k.String("port"); v != "" {
		cfg.Port = v
	}
	if v := k.String("log_level"); v != "" {
		cfg.LogLevel = v
	}
	if k.Exists("rate_limit_per_minute") {
		cfg.RateLimitPerMinute = k.Int("rate_limit_per_minute")
	}
	if k.Exists("cache_ttl_seconds") {
		cfg.CacheTTL = time.Duration(k.Int("cache_ttl_seconds")) * time.Second
	}
	if k.Exists("provider_timeout_seconds") {
		cfg.ProviderTimeout = time.Duration(k.Int("provider_timeout_seconds")) * time.Second
	}
	if v := k.String("primary_model"); v != "" {
		cfg.PrimaryModel = v
	}
	if v := k.String("fallback_model"); v != "" {
		cfg.FallbackModel = v
	}
	cfg.UseMockLLM = k.Bool("use_mock_llm")
	cfg.GCPProject = k.String("gcp_project")
	if v := k.String("gcp_location"); v != "" {
		cfg.GCPLocation = v
	}

	if cfg.RateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("rate limit per minute must be positive, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("cache TTL must be positive, got %s", cfg.CacheTTL)
	}
	if cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("provider timeout must be positive, got %s", cfg.ProviderTimeout)
	}
	if !cfg.UseMockLLM && cfg.GCPProject == "" {
		return nil, fmt.Errorf("REFLECT_GCP_PROJECT is required unless REFLECT_USE_MOCK_LLM is set")
	}

	return cfg, nil
}
