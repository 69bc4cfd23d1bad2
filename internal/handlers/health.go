package handlers

import (
	"time"

	"frauddetect/internal/repositories"
	"frauddetect/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const apiVersion = "1.0.0"

type HealthHandler struct {
	modelLoaded bool
	records     repositories.TransactionRepository
	alerts      repositories.AlertRepository
}

func NewHealthHandler(modelLoaded bool, records repositories.TransactionRepository, alerts repositories.AlertRepository) *HealthHandler {
	return &HealthHandler{
		modelLoaded: modelLoaded,
		records:     records,
		alerts:      alerts,
	}
}

// Root returns basic API information.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{
		"message": "Fraud Detection API",
		"version": apiVersion,
		"status":  "operational",
		"endpoints": fiber.Map{
			"health":       "/health",
			"stats":        "/stats",
			"transactions": "/api/transactions/analyze",
			"alerts":       "/api/alerts",
			"users":        "/api/users",
		},
	})
}

// Health reports service liveness and collaborator status.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{
		"status":          "healthy",
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"model_loaded":    h.modelLoaded,
		"redis_connected": repositories.RedisClient != nil,
		"version":         apiVersion,
	})
}

// Stats returns aggregate analysis figures.
func (h *HealthHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.records.Stats(c.UserContext())
	if err != nil {
		return utils.InternalError(c, "failed to load stats")
	}
	openAlerts, err := h.alerts.CountOpen(c.UserContext())
	if err != nil {
		return utils.InternalError(c, "failed to load stats")
	}
	return utils.Success(c, fiber.Map{
		"total_transactions_analyzed": stats.TotalAnalyzed,
		"high_risk_transactions":      stats.HighRisk,
		"active_alerts":               openAlerts,
		"model_loaded":                h.modelLoaded,
	})
}
