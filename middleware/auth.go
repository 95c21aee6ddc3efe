package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"stepwars-server/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SessionAuth resolves the opaque session token (HTTP-only cookie, or a
// Bearer header for non-browser clients) to a user id and attaches it as
// c.Locals("user_id"). Expired sessions are rejected, not cleaned up here.
func SessionAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("token")
		if token == "" {
			authHeader := c.Get("Authorization")
			token = strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				// no "Bearer " prefix — try raw value
				token = authHeader
			}
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication token missing",
			})
		}

		var session models.Session
		err := db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("🚫 [AUTH] Invalid or expired token for %s", c.Path())
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid or expired session",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		}

		c.Locals("user_id", session.UserID)
		return c.Next()
	}
}
