package handlers

import (
	"errors"
	"log/slog"

	"notebooklm-bridge/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	var upstreamErr *services.UpstreamError
	var fiberErr *fiber.Error

	switch {
	case services.IsAuthError(err):
		return fiber.StatusUnauthorized
	case errors.As(err, &upstreamErr):
		return upstreamErr.StatusCode
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes {"detail": ...} with the status matching err
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "status", status, "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"detail": err.Error(),
	})
}

// ErrorHandler is the Fiber error handler; it keeps error bodies in the
// same {"detail": ...} shape the handlers use.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}
