package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// AuthJSONEnv carries the credential payload as a JSON string (Railway/cloud deployments)
	AuthJSONEnv = "NOTEBOOKLM_AUTH_JSON"

	DefaultBaseURL = "https://notebooklm.google.com"
	ServiceName    = "BTC Wheel NotebookLM Bridge"
)

// Config holds all application configuration
type Config struct {
	Port        string
	Environment string

	// NotebookLM upstream
	BaseURL           string
	AuthFile          string // written by notebooklm-mcp-auth
	AliasesFile       string // optional YAML override for response field aliases
	ListTimeout       time.Duration
	QueryTimeout      time.Duration
	UpstreamRateLimit float64 // requests/second towards NotebookLM

	// Notebook list cache
	NotebookCacheTTL     time.Duration
	NotebookCacheRefresh time.Duration // 0 disables the background warmer
	RedisURL             string        // empty = in-process cache only

	// HTTP surface
	AllowedOrigins  string
	RateLimitGlobal int // requests/minute per IP
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8787"),
		Environment: getEnv("ENVIRONMENT", "development"),

		BaseURL:           getEnv("NOTEBOOKLM_BASE_URL", DefaultBaseURL),
		AuthFile:          getEnv("NOTEBOOKLM_AUTH_FILE", DefaultAuthFile()),
		AliasesFile:       getEnv("NOTEBOOKLM_ALIASES_FILE", ""),
		ListTimeout:       30 * time.Second,
		QueryTimeout:      60 * time.Second,
		UpstreamRateLimit: getFloatEnv("UPSTREAM_RATE_LIMIT", 5),

		NotebookCacheTTL:     getDurationEnv("NOTEBOOK_CACHE_TTL", 5*time.Minute),
		NotebookCacheRefresh: getDurationEnv("NOTEBOOK_CACHE_REFRESH", 10*time.Minute),
		RedisURL:             getEnv("REDIS_URL", ""),

		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		RateLimitGlobal: getIntEnv("RATE_LIMIT_GLOBAL", 120),
	}
}

// DefaultAuthFile returns ~/.notebooklm-mcp/auth.json
func DefaultAuthFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".notebooklm-mcp", "auth.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}
