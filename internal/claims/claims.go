package claims

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GetUserID extracts the authenticated user's UUID from the JWT in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	mc, err := mapClaims(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := mc["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// GetRole extracts the role claim; empty string when absent.
func GetRole(c *fiber.Ctx) string {
	mc, err := mapClaims(c)
	if err != nil {
		return ""
	}
	role, _ := mc["role"].(string)
	return role
}

// OptionalUserID returns the caller's UUID when a valid token is present,
// nil otherwise. Used by public routes that annotate results per user.
func OptionalUserID(c *fiber.Ctx) *uuid.UUID {
	id, err := GetUserID(c)
	if err != nil {
		return nil
	}
	return &id
}

func mapClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("no token in context")
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return mc, nil
}
