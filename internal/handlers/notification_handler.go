package handlers

import (
	"errors"

	"github.com/eventhubhq/eventhub-backend/internal/claims"
	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/eventhubhq/eventhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	unreadOnly := c.QueryBool("unreadOnly", false)
	notifications, err := h.notificationService.ListForUser(userID, unreadOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list notifications",
		})
	}
	return c.JSON(notifications)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to count notifications",
		})
	}
	return c.JSON(dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid notification id",
		})
	}
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	notification, err := h.notificationService.MarkRead(id, userID)
	if err != nil {
		// Another user's notification is reported as missing, not forbidden.
		if errors.Is(err, services.ErrNotificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Notification not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to mark notification read",
		})
	}
	return c.JSON(notification)
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to mark notifications read",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "All notifications marked as read"})
}
