package middleware

import (
	"github.com/eventhubhq/eventhub-backend/internal/claims"
	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles gates a route on the role claim carried by the bearer token.
// The token already encodes the role, so no database round trip is needed.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := claims.GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Insufficient permissions",
		})
	}
}
