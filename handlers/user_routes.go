package handlers

import (
	"stepwars-server/middleware"
	"stepwars-server/services"
	"stepwars-server/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService, authService *services.AuthService, db *gorm.DB) {
	grp := app.Group("/user", middleware.SessionAuth(db))

	grp.Get("/stats/:id", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "id")
		if err != nil {
			return errorResponse(c, err)
		}
		stats, err := userService.Stats(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(stats)
	})

	grp.Put("/stats/:id", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "id")
		if err != nil {
			return errorResponse(c, err)
		}

		var req services.StatsInput
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		stats, err := userService.UpdateStats(userID, req)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "User stats updated successfully", "userStats": stats})
	})

	grp.Get("/resources/:id", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "id")
		if err != nil {
			return errorResponse(c, err)
		}
		resources, err := userService.Resources(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(resources)
	})

	grp.Put("/resources/:id", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "id")
		if err != nil {
			return errorResponse(c, err)
		}

		var req services.ResourcesInput
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		resources, err := userService.UpdateResources(userID, req)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "User resources updated successfully", "userResources": resources})
	})

	grp.Post("/avatar", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
		}

		user, err := authService.Profile(userID)
		if err != nil {
			return errorResponse(c, err)
		}

		url, err := utils.UploadAvatar(fileHeader, user.Username)
		if err != nil {
			return errorResponse(c, err)
		}

		if err := authService.UpdateAvatar(userID, url); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "Avatar updated", "avatar": url})
	})
}
