/**
 * @description
 * Main entry point for the Gainer Watch backend.
 * Initializes the Fiber web server, loads configuration, sets up routes,
 * and runs the hourly update cycle in-process.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2: Web framework
 * - backend/internal/config: Config loader
 * - backend/internal/db: Redis connection
 * - backend/internal/services: Update cycle + alert registry
 *
 * @notes
 * - Performs one fetch-and-record pre-warm pass before serving so the
 *   history and today's batch exist ahead of the first scheduled tick.
 * - Cycles run sequentially in a single goroutine; if a cycle outlives
 *   the interval the ticker drops the missed tick, so cycles never overlap.
 */

package main

import (
	"context"
	"time"

	"github.com/gainerwatch/backend/internal/api"
	"github.com/gainerwatch/backend/internal/config"
	"github.com/gainerwatch/backend/internal/db"
	"github.com/gainerwatch/backend/internal/logger"
	"github.com/gainerwatch/backend/internal/services"
	"github.com/gainerwatch/backend/internal/store"
	"github.com/gainerwatch/backend/internal/yahoo"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// 2. Connect Redis (cache + alert pub/sub)
	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis: %v", err)
	}

	// 3. Initialize Services
	historyStore := store.NewHistoryStore(cfg.Harvest.Retention)
	source := yahoo.NewClient(cfg)
	alertService := services.NewAlertService()
	gainerService := services.NewGainerService(historyStore, redisClient, source, alertService, cfg.Harvest.Lookback)
	hub := services.NewAlertStreamHub(redisClient, services.AlertChannel)

	// 4. Pre-warm history before the first scheduled tick
	logger.Info("Initializing stock data...")
	gainerService.Warmup(context.Background())

	// 5. Schedule the update cycle
	go runCycles(gainerService, cfg.Harvest.Interval)

	// 6. Initialize Fiber App
	app := fiber.New(fiber.Config{
		AppName: "Gainer Watch",
	})

	// 7. Global Middleware
	app.Use(recover.New())     // Panic recovery
	app.Use(fiberlogger.New()) // Request logging
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	// 8. Routes
	api.SetupRoutes(app, gainerService, alertService, hub)

	// 9. Start Server
	logger.Info("🚀 Starting Gainer Watch backend on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// runCycles executes the update cycle once per interval. The loop body is
// synchronous, so a slow cycle delays (never overlaps) the next one.
func runCycles(gainerService *services.GainerService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		logger.Info("Fetching latest stock data...")
		gainerService.RunCycle(context.Background())
	}
}
