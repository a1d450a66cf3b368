/**
 * @description
 * Gainer API Handlers.
 * Exposes today's scraped gainers and the derived 3-day ranking.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"time"

	"github.com/gainerwatch/backend/internal/models"
	"github.com/gainerwatch/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// maxListedGainers caps both gainer endpoints at the top of the list.
const maxListedGainers = 25

type GainerHandler struct {
	Service *services.GainerService
}

func NewGainerHandler(service *services.GainerService) *GainerHandler {
	return &GainerHandler{Service: service}
}

// GetTodayGainers returns the most recent fetched batch, unranked
// GET /api/gainers/today
func (h *GainerHandler) GetTodayGainers(c *fiber.Ctx) error {
	gainers := h.Service.TodayGainers(c.Context())
	if gainers == nil {
		gainers = []models.Snapshot{}
	}
	if len(gainers) > maxListedGainers {
		gainers = gainers[:maxListedGainers]
	}
	return c.JSON(fiber.Map{"success": true, "data": gainers})
}

// GetThreeDayGainers returns the derived ranking, best gain first
// GET /api/gainers/3day
func (h *GainerHandler) GetThreeDayGainers(c *fiber.Ctx) error {
	gainers := h.Service.ThreeDayGains(time.Now())
	if gainers == nil {
		gainers = []models.GainRecord{}
	}
	if len(gainers) > maxListedGainers {
		gainers = gainers[:maxListedGainers]
	}
	return c.JSON(fiber.Map{"success": true, "data": gainers})
}
