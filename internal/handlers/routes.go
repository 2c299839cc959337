package handlers

import "github.com/gofiber/fiber/v2"

// Handlers groups every HTTP handler of the bridge
type Handlers struct {
	Health    *HealthHandler
	Notebooks *NotebookHandler
	Query     *QueryHandler
}

// RegisterRoutes mounts the bridge endpoints on app
func RegisterRoutes(app *fiber.App, h *Handlers) {
	app.Get("/", h.Health.Root)
	app.Get("/health", h.Health.Handle)
	app.Get("/notebooks", h.Notebooks.List)
	app.Post("/query", h.Query.Query)
}
