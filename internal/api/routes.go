/**
 * @description
 * API Route definitions.
 * Sets up the router groups and assigns handlers.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/api/handlers
 * - backend/internal/services
 */

package api

import (
	"github.com/gainerwatch/backend/internal/api/handlers"
	"github.com/gainerwatch/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all API routes over the shared services.
func SetupRoutes(app *fiber.App, gainerService *services.GainerService, alertService *services.AlertService, hub *services.AlertStreamHub) {
	// 1. Initialize Handlers
	gainerHandler := handlers.NewGainerHandler(gainerService)
	alertHandler := handlers.NewAlertHandler(alertService, hub)
	stockHandler := handlers.NewStockHandler(gainerService)

	// 2. Define Routes
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	gainers := api.Group("/gainers")
	gainers.Get("/today", gainerHandler.GetTodayGainers)
	gainers.Get("/3day", gainerHandler.GetThreeDayGainers)

	alerts := api.Group("/alerts")
	alerts.Get("/", alertHandler.ListAlerts)
	alerts.Post("/", alertHandler.CreateAlert)
	alerts.Get("/stream", alertHandler.StreamAlerts)
	alerts.Delete("/:id", alertHandler.DeleteAlert)

	api.Get("/stock/:symbol", stockHandler.GetHistory)
}
