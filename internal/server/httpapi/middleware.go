package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/zerotask/zerotask/internal/server/services"
)

// UserContextKey is the key used to store the authenticated user id in the
// Fiber context.
const UserContextKey = "userID"

// AuthMiddleware validates the Bearer access token and stores the user id in
// the request context for downstream handlers.
func AuthMiddleware(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		userID, err := users.UserIDFromToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, userID)

		return c.Next()
	}
}

// userID returns the authenticated user id stored by AuthMiddleware.
func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserContextKey).(string)
	return id
}
