package handlers

import (
	"time"

	"github.com/eventhubhq/eventhub-backend/internal/database"
	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	status := "healthy"
	code := fiber.StatusOK

	if err := database.Ping(); err != nil {
		dbStatus = "unreachable"
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
