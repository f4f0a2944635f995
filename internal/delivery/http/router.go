package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/weatherwidget/backend/internal/service"
	"github.com/weatherwidget/backend/internal/widget"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, lookups *service.LookupService, sessions *widget.Sessions, assets widget.Assets) {
	handler := NewHandler(lookups, sessions, assets)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Server-rendered widget
	app.Get("/", handler.Index)
	app.Post("/lookup", handler.Lookup)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Session-bound widget state
		api.Get("/widget", handler.GetWidget)
		api.Put("/widget/query", handler.SetQuery)
		api.Post("/widget/submit", handler.Submit)

		// Stateless lookup and history
		api.Get("/weather", handler.GetWeather)
		api.Get("/history", handler.GetHistory)
	}
}
