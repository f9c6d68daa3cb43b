package routes

import (
	"github.com/eventhubhq/eventhub-backend/internal/config"
	"github.com/eventhubhq/eventhub-backend/internal/handlers"
	"github.com/eventhubhq/eventhub-backend/internal/middleware"
	"github.com/eventhubhq/eventhub-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	notificationHandler *handlers.NotificationHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Events — reads are public with optional identity for per-user annotation.
	// Literal paths are registered before the :id routes.
	events := api.Group("/events")
	events.Get("/", middleware.OptionalJWT(cfg), eventHandler.Search)
	events.Get("/my-registrations", middleware.JWTProtected(cfg), eventHandler.MyRegistrations)
	events.Get("/my-events", middleware.JWTProtected(cfg),
		middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), eventHandler.MyEvents)
	events.Get("/:id", middleware.OptionalJWT(cfg), eventHandler.Get)
	events.Post("/", middleware.JWTProtected(cfg),
		middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), eventHandler.Create)
	events.Put("/:id", middleware.JWTProtected(cfg),
		middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), eventHandler.Update)
	events.Delete("/:id", middleware.JWTProtected(cfg),
		middleware.RequireRoles(models.RoleAdmin), eventHandler.Delete)
	events.Post("/:id/register", middleware.JWTProtected(cfg), eventHandler.Register)
	events.Delete("/:id/register", middleware.JWTProtected(cfg), eventHandler.Unregister)

	// Notifications — all authenticated
	notifications := api.Group("/notifications", middleware.JWTProtected(cfg))
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Analytics — tracking is anonymous, reads are admin only
	analytics := api.Group("/analytics")
	analytics.Post("/track", middleware.OptionalJWT(cfg), analyticsHandler.Track)
	analytics.Get("/overview", middleware.JWTProtected(cfg),
		middleware.RequireRoles(models.RoleAdmin), analyticsHandler.Overview)
	analytics.Get("/page-views", middleware.JWTProtected(cfg),
		middleware.RequireRoles(models.RoleAdmin), analyticsHandler.PageViews)
	analytics.Get("/registrations", middleware.JWTProtected(cfg),
		middleware.RequireRoles(models.RoleAdmin), analyticsHandler.Registrations)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.RequireRoles(models.RoleAdmin))
	admin.Get("/database-view", adminHandler.DatabaseView)
	admin.Get("/users", adminHandler.Users)
	admin.Get("/events", adminHandler.Events)
}
