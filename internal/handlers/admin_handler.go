package handlers

import (
	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/eventhubhq/eventhub-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler serves raw moderation views straight off the database; no
// service layer in between, matching the plain read-only nature of the data.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DatabaseView returns a capped projection of every table, inactive rows
// included.
func (h *AdminHandler) DatabaseView(c *fiber.Ctx) error {
	tables := make([]dto.DatabaseTable, 0, 5)

	var users []models.User
	if err := h.db.Find(&users).Error; err != nil {
		return h.fail(c, err)
	}
	userRows := make([]dto.UserRow, len(users))
	for i, u := range users {
		userRows[i] = dto.UserRow{
			ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName,
			Role: u.Role, IsActive: u.IsActive, CreatedAt: u.CreatedAt,
		}
	}
	tables = append(tables, dto.DatabaseTable{TableName: "Users", Rows: userRows})

	var events []models.Event
	if err := h.db.Preload("Organizer").Find(&events).Error; err != nil {
		return h.fail(c, err)
	}
	eventRows := make([]dto.EventRow, len(events))
	for i, e := range events {
		eventRows[i] = dto.EventRow{
			ID: e.ID, Title: e.Title, City: e.City, AreaOfInterest: e.AreaOfInterest,
			EventDate: e.EventDate, Organizer: e.Organizer.FullName(),
			IsActive: e.IsActive, CreatedAt: e.CreatedAt,
		}
	}
	tables = append(tables, dto.DatabaseTable{TableName: "Events", Rows: eventRows})

	var registrations []models.EventRegistration
	if err := h.db.Preload("Event").Preload("User").Find(&registrations).Error; err != nil {
		return h.fail(c, err)
	}
	registrationRows := make([]dto.RegistrationRow, len(registrations))
	for i, r := range registrations {
		registrationRows[i] = dto.RegistrationRow{
			ID: r.ID, Event: r.Event.Title, User: r.User.FullName(),
			Status: r.Status, RegisteredAt: r.RegisteredAt,
		}
	}
	tables = append(tables, dto.DatabaseTable{TableName: "EventRegistrations", Rows: registrationRows})

	var notifications []models.Notification
	if err := h.db.Preload("User").Order("created_at DESC").Limit(50).Find(&notifications).Error; err != nil {
		return h.fail(c, err)
	}
	notificationRows := make([]dto.NotificationRow, len(notifications))
	for i, n := range notifications {
		notificationRows[i] = dto.NotificationRow{
			ID: n.ID, User: n.User.FullName(), Title: n.Title,
			IsRead: n.IsRead, CreatedAt: n.CreatedAt,
		}
	}
	tables = append(tables, dto.DatabaseTable{TableName: "Notifications", Rows: notificationRows})

	var pageViews []models.PageView
	if err := h.db.Order("viewed_at DESC").Limit(100).Find(&pageViews).Error; err != nil {
		return h.fail(c, err)
	}
	pageViewRows := make([]dto.PageViewRow, len(pageViews))
	for i, pv := range pageViews {
		pageViewRows[i] = dto.PageViewRow{
			ID: pv.ID, PageURL: pv.PageURL, IPAddress: pv.IPAddress, ViewedAt: pv.ViewedAt,
		}
	}
	tables = append(tables, dto.DatabaseTable{TableName: "PageViews", Rows: pageViewRows})

	return c.JSON(tables)
}

func (h *AdminHandler) Users(c *fiber.Ctx) error {
	var users []models.User
	if err := h.db.Find(&users).Error; err != nil {
		return h.fail(c, err)
	}

	resps := make([]dto.AdminUserResponse, len(users))
	for i, u := range users {
		resps[i] = dto.AdminUserResponse{
			ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName,
			Role: u.Role, IsActive: u.IsActive, CreatedAt: u.CreatedAt, LastLoginAt: u.LastLoginAt,
		}
	}
	return c.JSON(resps)
}

func (h *AdminHandler) Events(c *fiber.Ctx) error {
	var events []models.Event
	if err := h.db.Preload("Organizer").Find(&events).Error; err != nil {
		return h.fail(c, err)
	}

	counts := make(map[string]int64)
	var rows []struct {
		EventID string
		N       int64
	}
	if err := h.db.Model(&models.EventRegistration{}).
		Select("event_id, COUNT(*) AS n").
		Group("event_id").
		Scan(&rows).Error; err != nil {
		return h.fail(c, err)
	}
	for _, r := range rows {
		counts[r.EventID] = r.N
	}

	resps := make([]dto.AdminEventResponse, len(events))
	for i, e := range events {
		resps[i] = dto.AdminEventResponse{
			ID: e.ID, Title: e.Title, Description: e.Description, EventDate: e.EventDate,
			City: e.City, Location: e.Location, AreaOfInterest: e.AreaOfInterest,
			OrganizerName:     e.Organizer.FullName(),
			RegistrationCount: counts[e.ID.String()],
			IsActive:          e.IsActive, CreatedAt: e.CreatedAt,
		}
	}
	return c.JSON(resps)
}

func (h *AdminHandler) fail(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to load admin data",
	})
}
