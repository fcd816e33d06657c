package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30, cfg.Cache.TTLSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.buenavida.example/v1")
	t.Setenv("API_TIMEOUT_SECONDS", "10")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CACHE_TTL_SECONDS", "120")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "https://api.buenavida.example/v1", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("API_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
}
