package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDKey is the Locals key holding the request ID
const RequestIDKey = "requestid"

// RequestID assigns every request a UUID (or keeps the caller's X-Request-ID)
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: RequestIDKey,
		Generator: func() string {
			return uuid.New().String()
		},
	})
}

// GetRequestID returns the request ID set by RequestID, or "" outside it
func GetRequestID(c *fiber.Ctx) string {
	if v := c.Locals(RequestIDKey); v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
