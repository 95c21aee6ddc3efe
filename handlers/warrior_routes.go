package handlers

import (
	"fmt"

	"stepwars-server/middleware"
	"stepwars-server/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupWarriorRoutes(app *fiber.App, warriorService *services.WarriorService, catalog *services.CatalogService, db *gorm.DB) {
	grp := app.Group("/user/warriors", middleware.SessionAuth(db))

	grp.Get("/types", func(c *fiber.Ctx) error {
		return c.JSON(catalog.WarriorTypes())
	})

	grp.Post("/train", func(c *fiber.Ctx) error {
		type Req struct {
			UserID        uint `json:"userId" validate:"required"`
			WarriorTypeID uint `json:"warriorTypeId" validate:"required"`
			Count         int  `json:"count" validate:"required,min=1"`
		}
		var req Req
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		finish, err := warriorService.Train(req.UserID, req.WarriorTypeID, req.Count)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"message":    fmt.Sprintf("Training %d warriors started", req.Count),
			"finishTime": finish,
		})
	})

	grp.Post("/upgrade", func(c *fiber.Ctx) error {
		type Req struct {
			UserID        uint `json:"userId" validate:"required"`
			WarriorTypeID uint `json:"warriorTypeId" validate:"required"`
			UpgradingTime int  `json:"upgradingTime" validate:"required,min=1"`
		}
		var req Req
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		finish, err := warriorService.Upgrade(req.UserID, req.WarriorTypeID, req.UpgradingTime)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"message":    "Warrior upgrade started",
			"finishTime": finish,
		})
	})

	grp.Post("/apply-training/:userId", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "userId")
		if err != nil {
			return errorResponse(c, err)
		}

		applied, err := warriorService.ApplyTraining(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		if applied == 0 {
			return c.JSON(fiber.Map{"message": "No completed trainings."})
		}
		return c.JSON(fiber.Map{"message": fmt.Sprintf("Applied %d training(s)", applied)})
	})

	grp.Post("/apply-upgrades/:userId", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "userId")
		if err != nil {
			return errorResponse(c, err)
		}

		applied, err := warriorService.ApplyUpgrades(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		if applied == 0 {
			return c.JSON(fiber.Map{"message": "No completed upgrades."})
		}
		return c.JSON(fiber.Map{"message": fmt.Sprintf("Applied %d upgrade(s)", applied)})
	})

	grp.Get("/training-queue/:userId", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "userId")
		if err != nil {
			return errorResponse(c, err)
		}
		entries, err := warriorService.TrainingQueue(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(entries)
	})

	grp.Get("/upgrade-queue/:userId", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "userId")
		if err != nil {
			return errorResponse(c, err)
		}
		entries, err := warriorService.UpgradeQueue(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(entries)
	})

	// Registered last so the literal routes above win.
	grp.Get("/:userId", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "userId")
		if err != nil {
			return errorResponse(c, err)
		}
		warriors, err := warriorService.UserWarriors(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(warriors)
	})
}
