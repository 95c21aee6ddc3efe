package handlers

import (
	"stepwars-server/middleware"
	"stepwars-server/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupStepsRoutes(app *fiber.App, stepsService *services.StepsService, db *gorm.DB) {
	grp := app.Group("/user/steps", middleware.SessionAuth(db))

	grp.Get("/:id", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "id")
		if err != nil {
			return errorResponse(c, err)
		}
		row, err := stepsService.Get(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(row)
	})

	grp.Post("/:id/start", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "id")
		if err != nil {
			return errorResponse(c, err)
		}

		type Req struct {
			CurrentStepCount *int `json:"currentStepCount" validate:"required"`
		}
		var req Req
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		row, err := stepsService.Start(userID, *req.CurrentStepCount)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "Step tracking started", "userSteps": row})
	})

	grp.Post("/:id/stop", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "id")
		if err != nil {
			return errorResponse(c, err)
		}

		type Req struct {
			CurrentStepCount *int `json:"currentStepCount" validate:"required"`
		}
		var req Req
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		row, err := stepsService.Stop(userID, *req.CurrentStepCount)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "Step tracking stopped", "userSteps": row})
	})

	grp.Post("/:id/reset", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "id")
		if err != nil {
			return errorResponse(c, err)
		}
		row, err := stepsService.Reset(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "User steps reset", "userSteps": row})
	})
}
