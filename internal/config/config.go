package config

import (
	"os"
	"strconv"
)

// Config buenavida-admin (API client) configuration
type Config struct {
	API struct {
		BaseURL        string
		TimeoutSeconds int
	}
	RedisEnabled bool
	Redis        struct {
		Addr     string
		Password string
		DB       int
	}
	Cache struct {
		TTLSeconds int
	}
	Log struct {
		Level  string
		Format string
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = getEnv("API_BASE_URL", "http://localhost:3000/api")
	cfg.API.TimeoutSeconds = parseInt(getEnv("API_TIMEOUT_SECONDS", "30"), 30)

	// Default to true for normal use: if redis is unavailable, buenavida-admin
	// falls back to an in-memory store so listing still works with plain `go run`.
	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "true") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Cache.TTLSeconds = parseInt(getEnv("CACHE_TTL_SECONDS", "30"), 30)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
