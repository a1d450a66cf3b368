/**
 * @description
 * Alert API Handlers.
 * CRUD over the alert registry plus a live SSE stream of triggered alerts.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"bufio"
	"fmt"

	"github.com/gainerwatch/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	Alerts *services.AlertService
	Hub    *services.AlertStreamHub
}

func NewAlertHandler(alerts *services.AlertService, hub *services.AlertStreamHub) *AlertHandler {
	return &AlertHandler{Alerts: alerts, Hub: hub}
}

// CreateAlertRequest represents the alert creation body
type CreateAlertRequest struct {
	Type      string  `json:"type"`
	Threshold float64 `json:"threshold"`
	Symbol    string  `json:"symbol"`
}

// ListAlerts returns all registered alerts in creation order
// GET /api/alerts
func (h *AlertHandler) ListAlerts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.Alerts.List()})
}

// CreateAlert registers a new alert and returns it with its generated id
// POST /api/alerts
func (h *AlertHandler) CreateAlert(c *fiber.Ctx) error {
	var req CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	alert, err := h.Alerts.Add(req.Type, req.Threshold, req.Symbol)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": alert})
}

// DeleteAlert removes an alert by id; deleting an unknown id still succeeds
// DELETE /api/alerts/:id
func (h *AlertHandler) DeleteAlert(c *fiber.Ctx) error {
	h.Alerts.Remove(c.Params("id"))
	return c.JSON(fiber.Map{"success": true, "message": "Alert deleted"})
}

// StreamAlerts relays triggered alerts over SSE as they are published
// GET /api/alerts/stream
func (h *AlertHandler) StreamAlerts(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	requestCtx := c.Context()
	ch, unsubscribe := h.Hub.Subscribe()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		requestDone := requestCtx.Done()

		for {
			select {
			case <-requestDone:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", msg)
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}
