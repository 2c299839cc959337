package health

import (
	"net/http"
	"strings"
	"time"
)

// IsQuotaError detects if an upstream failure is related to quota exhaustion or rate limiting
func IsQuotaError(statusCode int, responseBody string) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}

	lowerBody := strings.ToLower(responseBody)
	quotaPatterns := []string{
		"resource_exhausted",
		"quota exceeded",
		"rate limit",
		"too many requests",
		"daily limit",
		"rate_limit_exceeded",
		"quota_exceeded",
	}

	for _, pattern := range quotaPatterns {
		if strings.Contains(lowerBody, pattern) {
			return true
		}
	}

	return false
}

// IsAuthError detects upstream rejections that require running notebooklm-mcp-auth again
func IsAuthError(statusCode int) bool {
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden
}

// ParseCooldownDuration determines the appropriate cooldown based on the error type
func ParseCooldownDuration(statusCode int, responseBody string) time.Duration {
	lowerBody := strings.ToLower(responseBody)

	// Daily limit - cool down for a long time
	if strings.Contains(lowerBody, "daily limit") {
		return 24 * time.Hour
	}

	// Rate limit (per-minute) - short cooldown
	if statusCode == http.StatusTooManyRequests ||
		strings.Contains(lowerBody, "rate limit") ||
		strings.Contains(lowerBody, "rate_limit_exceeded") {
		return 5 * time.Minute
	}

	return 15 * time.Minute
}
