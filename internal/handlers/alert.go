package handlers

import (
	"errors"

	"frauddetect/internal/middleware"
	"frauddetect/internal/models"
	"frauddetect/internal/repositories"
	"frauddetect/internal/services/alert"
	"frauddetect/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	alerts alert.Service
}

func NewAlertHandler(alerts alert.Service) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// List returns alerts, filtered by status (default: open).
func (h *AlertHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", models.AlertStatusOpen)
	if status == "all" {
		status = ""
	}
	limit := c.QueryInt("limit", 50)

	alerts, err := h.alerts.List(c.UserContext(), status, limit)
	if err != nil {
		return utils.InternalError(c, "failed to list alerts")
	}
	return utils.Success(c, fiber.Map{"alerts": alerts})
}

// Acknowledge marks an open alert as handled by the calling admin.
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid alert id")
	}

	by := "admin"
	if claims, ok := c.Locals(middleware.AdminClaimsKey).(*models.AdminClaims); ok {
		by = claims.Username
	}

	if err := h.alerts.Acknowledge(c.UserContext(), uint(id), by); err != nil {
		if errors.Is(err, repositories.ErrAlertNotFound) {
			return utils.NotFound(c, "alert not found or already acknowledged")
		}
		return utils.InternalError(c, "failed to acknowledge alert")
	}
	return utils.Success(c, fiber.Map{"status": models.AlertStatusAcknowledged})
}
