package handlers

import (
	"github.com/eventhubhq/eventhub-backend/internal/claims"
	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/eventhubhq/eventhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.analyticsService.Overview()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load analytics overview",
		})
	}
	return c.JSON(overview)
}

func (h *AnalyticsHandler) PageViews(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	stats, err := h.analyticsService.PageViewSeries(days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load page view stats",
		})
	}
	return c.JSON(stats)
}

func (h *AnalyticsHandler) Registrations(c *fiber.Ctx) error {
	stats, err := h.analyticsService.RegistrationLeaderboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load registration stats",
		})
	}
	return c.JSON(stats)
}

// Track accepts anonymous page views; IP and user agent fall back to the
// request when the body omits them.
func (h *AnalyticsHandler) Track(c *fiber.Ctx) error {
	var req dto.TrackPageViewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.PageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "page_url is required",
		})
	}

	if req.IPAddress == "" {
		req.IPAddress = c.IP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Get(fiber.HeaderUserAgent)
	}

	if err := h.analyticsService.TrackPageView(req.PageURL, claims.OptionalUserID(c), req.IPAddress, req.UserAgent); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to track page view",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Page view tracked"})
}
