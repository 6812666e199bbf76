package routes

import (
	"github.com/gofiber/fiber/v2"

	"claim_relay/handlers"
)

func RegisterRelayRoutes(app *fiber.App, handler *handlers.RelayHandler) {
	api := app.Group("/api")
	api.Post("/trigger-workflow", handler.TriggerWorkflow)
	api.Post("/resume-workflow", handler.ResumeWorkflow)
	app.Get("/api", handlers.ServiceInfo)
}

// RegisterInfoRoute exposes the service description at the root when no
// static client is mounted there.
func RegisterInfoRoute(app *fiber.App) {
	app.Get("/", handlers.ServiceInfo)
}
