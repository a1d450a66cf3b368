/**
 * @description
 * Stock history API handler.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"github.com/gainerwatch/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	Service *services.GainerService
}

func NewStockHandler(service *services.GainerService) *StockHandler {
	return &StockHandler{Service: service}
}

// GetHistory returns the full retained snapshot sequence for one symbol,
// oldest first; unknown symbols yield an empty list
// GET /api/stock/:symbol
func (h *StockHandler) GetHistory(c *fiber.Ctx) error {
	history := h.Service.SymbolHistory(c.Params("symbol"))
	return c.JSON(fiber.Map{"success": true, "data": history})
}
