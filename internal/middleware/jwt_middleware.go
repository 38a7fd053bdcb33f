package middleware

import (
	"errors"
	"log"
	"strings"

	"catalogo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that checks for a valid bearer token and
// confirms the subject still exists. Each failure mode answers 401 with its
// own message so callers can tell why they were rejected, without leaking
// anything about other tenants.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		userID, err := authService.Authenticate(parts[1])
		if err != nil {
			log.Printf("Token rejected: %v", err)
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return unauthorized(c, "Expired token")
			case errors.Is(err, services.ErrUnknownUser):
				return unauthorized(c, "User not found")
			default:
				return unauthorized(c, "Invalid token")
			}
		}

		// The resolved identity lives in the request context for its duration.
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}
