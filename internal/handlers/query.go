package handlers

import (
	"encoding/json"

	"notebooklm-bridge/internal/logging"
	"notebooklm-bridge/internal/middleware"
	"notebooklm-bridge/internal/models"
	"notebooklm-bridge/internal/services"

	"github.com/gofiber/fiber/v2"
)

// QueryHandler handles questions from the BTC Wheel chat
type QueryHandler struct {
	queryService *services.QueryService
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryService *services.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// Query answers a question. Only bad input (400) and missing credentials
// (401) produce a non-200 status; upstream trouble is reported in the body.
func (h *QueryHandler) Query(c *fiber.Ctx) error {
	// Decoded from the raw body so clients that omit Content-Type still work
	var body struct {
		Question   *string `json:"question"`
		NotebookID *string `json:"notebook_id"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if body.Question == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "question is required",
		})
	}

	req := models.QueryRequest{Question: *body.Question}
	if body.NotebookID != nil {
		req.NotebookID = *body.NotebookID
	}

	logger := logging.WithRequest(middleware.GetRequestID(c), c.Path())

	resp, err := h.queryService.Query(c.UserContext(), &req)
	if err != nil {
		logger.Warn("query rejected", "error", err)
		return respondError(c, err)
	}

	if resp.Success {
		logger.Info("query answered", "notebook_id", resp.NotebookID, "sources", len(resp.Sources))
	} else {
		logger.Warn("query failed", "notebook_id", resp.NotebookID, "error", *resp.Error)
	}

	return c.JSON(resp)
}
