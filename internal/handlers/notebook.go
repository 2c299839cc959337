package handlers

import (
	"notebooklm-bridge/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotebookHandler handles notebook listing
type NotebookHandler struct {
	notebookService *services.NotebookService
}

// NewNotebookHandler creates a new notebook handler
func NewNotebookHandler(notebookService *services.NotebookService) *NotebookHandler {
	return &NotebookHandler{notebookService: notebookService}
}

// List returns every notebook of the authenticated account. Upstream
// failures keep the upstream status code.
func (h *NotebookHandler) List(c *fiber.Ctx) error {
	notebooks, err := h.notebookService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notebooks)
}
