package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig holds inbound rate limiting settings
type RateLimitConfig struct {
	// Global limit (per IP) for every endpoint except probes
	GlobalMax        int
	GlobalExpiration time.Duration

	// /query fans out to NotebookLM, so it gets its own tighter bucket
	QueryMax        int
	QueryExpiration time.Duration
}

// DefaultRateLimitConfig returns the defaults for a single-frontend deployment
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		// Global: 120/min = 2 req/sec
		GlobalMax:        120,
		GlobalExpiration: 1 * time.Minute,

		// Query: 30/min, each question can cost two upstream calls
		QueryMax:        30,
		QueryExpiration: 1 * time.Minute,
	}
}

// LoadRateLimitConfig builds the config from the global limit in the app
// config, relaxing it in development
func LoadRateLimitConfig(globalMax int, environment string) *RateLimitConfig {
	config := DefaultRateLimitConfig()
	if globalMax > 0 {
		config.GlobalMax = globalMax
		if config.QueryMax > globalMax {
			config.QueryMax = globalMax
		}
	}

	if environment == "development" {
		config.GlobalMax = 1000
		config.QueryMax = 200
		log.Println("⚠️  [RATE-LIMIT] Development mode: using relaxed rate limits")
	}

	return config
}

// isProbe reports whether the path is a health or metrics endpoint
func isProbe(c *fiber.Ctx) bool {
	path := c.Path()
	return path == "/" || path == "/health" || strings.HasPrefix(path, "/metrics")
}

// GlobalRateLimiter creates a per-IP limiter for all non-probe requests
func GlobalRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Next:       isProbe,
		Max:        config.GlobalMax,
		Expiration: config.GlobalExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "global:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("🚫 [RATE-LIMIT] Global limit reached for IP: %s", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail":      "Too many requests. Please slow down.",
				"retry_after": int(config.GlobalExpiration.Seconds()),
			})
		},
	})
}

// QueryRateLimiter limits questions per IP
func QueryRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.QueryMax,
		Expiration: config.QueryExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "query:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("⚠️  [RATE-LIMIT] Query limit reached for IP: %s", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail":      "Too many questions. Please wait before asking again.",
				"retry_after": int(config.QueryExpiration.Seconds()),
			})
		},
	})
}
