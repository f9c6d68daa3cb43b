package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/eventhubhq/eventhub-backend/internal/claims"
	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/eventhubhq/eventhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) Search(c *fiber.Ctx) error {
	req := dto.EventSearchRequest{
		City:           c.Query("city"),
		AreaOfInterest: c.Query("areaOfInterest"),
		SearchTerm:     c.Query("searchTerm"),
	}
	req.Page, _ = strconv.Atoi(c.Query("page", "1"))
	req.PageSize, _ = strconv.Atoi(c.Query("pageSize", "10"))

	var err error
	if req.FromDate, err = parseDateQuery(c.Query("fromDate")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid fromDate",
		})
	}
	if req.ToDate, err = parseDateQuery(c.Query("toDate")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid toDate",
		})
	}

	events, err := h.eventService.Search(&req, claims.OptionalUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search events",
		})
	}
	return c.JSON(events)
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event id",
		})
	}

	event, err := h.eventService.GetByID(id, claims.OptionalUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load event",
		})
	}
	return c.JSON(event)
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if msg := validateEventFields(req.Title, req.Description, req.City, req.EventDate); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: msg,
		})
	}

	event, err := h.eventService.Create(&req, userID)
	if err != nil {
		if errors.Is(err, services.ErrOrganizerNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Organizer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create event",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event id",
		})
	}
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if msg := validateEventFields(req.Title, req.Description, req.City, req.EventDate); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: msg,
		})
	}

	event, err := h.eventService.Update(id, &req, userID, claims.GetRole(c))
	if err != nil {
		// Absent and not-owned are indistinguishable on purpose.
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update event",
		})
	}
	return c.JSON(event)
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event id",
		})
	}
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.eventService.Delete(id, userID, claims.GetRole(c)); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete event",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EventHandler) Register(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event id",
		})
	}
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	registration, err := h.eventService.RegisterForEvent(id, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyRegistered):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrEventNotFound), errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to register for event",
		})
	}
	return c.JSON(registration)
}

func (h *EventHandler) Unregister(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event id",
		})
	}
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.eventService.Unregister(id, userID); err != nil {
		if errors.Is(err, services.ErrRegistrationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Registration not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to unregister",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EventHandler) MyRegistrations(c *fiber.Ctx) error {
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	registrations, err := h.eventService.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list registrations",
		})
	}
	return c.JSON(registrations)
}

func (h *EventHandler) MyEvents(c *fiber.Ctx) error {
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	events, err := h.eventService.ListForOrganizer(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list events",
		})
	}
	return c.JSON(events)
}

func validateEventFields(title, description, city string, eventDate time.Time) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required"
	}
	if strings.TrimSpace(description) == "" {
		return "Description is required"
	}
	if strings.TrimSpace(city) == "" {
		return "City is required"
	}
	if eventDate.IsZero() {
		return "Event date is required"
	}
	return ""
}

// parseDateQuery accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
