package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "PORT", "SETTINGS_BACKEND", "SHOPIFY_APP_TYPE", "SHOPIFY_HTTP_TIMEOUT", "ADMIN_ALLOWED_ORIGINS", "REDIS_DB"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, SettingsBackendEnv, cfg.SettingsBackend)
	assert.Equal(t, "Private", cfg.Shopify.AppType)
	assert.Equal(t, 30*time.Second, cfg.Shopify.HTTPTimeout)
	assert.Empty(t, cfg.AdminAllowedOrigins)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SETTINGS_BACKEND", "Redis")
	t.Setenv("SHOPIFY_HTTP_TIMEOUT", "5s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ADMIN_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, SettingsBackendRedis, cfg.SettingsBackend)
	assert.Equal(t, 5*time.Second, cfg.Shopify.HTTPTimeout)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AdminAllowedOrigins)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SHOPIFY_HTTP_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.Shopify.HTTPTimeout)
	assert.Equal(t, 0, cfg.Redis.DB)
}
