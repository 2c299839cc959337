package handlers

import (
	"notebooklm-bridge/internal/config"
	"notebooklm-bridge/internal/health"
	"notebooklm-bridge/internal/models"
	"notebooklm-bridge/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles the root and health check endpoints
type HealthHandler struct {
	credentials *services.CredentialService
	health      *health.Service
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(credentials *services.CredentialService, healthSvc *health.Service) *HealthHandler {
	return &HealthHandler{credentials: credentials, health: healthSvc}
}

// Root responds with a minimal liveness payload
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(models.RootStatus{
		Service:       config.ServiceName,
		Status:        "running",
		Authenticated: h.credentials.AuthFileExists(),
	})
}

// Handle responds with auth and upstream status. Credential problems are
// reported as auth_valid=false, never as an error status.
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	status := models.HealthStatus{
		Status:   "healthy",
		AuthFile: h.credentials.AuthFilePath(),
		Upstream: h.upstreamStatus(),
	}

	if h.credentials.AuthFileExists() {
		if cred, err := h.credentials.Load(); err == nil {
			preview := cred.SessionPreview()
			status.SessionPreview = &preview
			status.AuthValid = true
		}
	}

	return c.JSON(status)
}

func (h *HealthHandler) upstreamStatus() models.UpstreamStatus {
	summary := h.health.Summary()
	upstream := models.UpstreamStatus{
		Healthy:      summary.Status != health.StatusUnhealthy && summary.Status != health.StatusCooldown,
		FailureCount: summary.FailureCount,
		LastError:    summary.LastError,
	}
	if !summary.LastSuccessAt.IsZero() {
		t := summary.LastSuccessAt
		upstream.LastSuccessAt = &t
	}
	if !summary.CooldownUntil.IsZero() {
		t := summary.CooldownUntil
		upstream.CooldownUntil = &t
	}
	return upstream
}
