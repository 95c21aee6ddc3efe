package handlers

import (
	"fmt"

	"stepwars-server/middleware"
	"stepwars-server/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupBuildingRoutes(app *fiber.App, buildingService *services.BuildingService, catalog *services.CatalogService, db *gorm.DB) {
	grp := app.Group("/user/buildings", middleware.SessionAuth(db))

	grp.Get("/types", func(c *fiber.Ctx) error {
		return c.JSON(catalog.BuildingTypes())
	})

	grp.Post("/build", func(c *fiber.Ctx) error {
		type Req struct {
			UserID         uint   `json:"userId" validate:"required"`
			BuildingTypeID uint   `json:"buildingTypeId" validate:"required"`
			Level          int    `json:"level" validate:"min=0"`
			Location       string `json:"location" validate:"max=50"`
		}
		var req Req
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		if err := buildingService.Build(req.UserID, req.BuildingTypeID, req.Level, req.Location); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "Building constructed."})
	})

	grp.Post("/upgrade", func(c *fiber.Ctx) error {
		type Req struct {
			UserID         uint `json:"userId" validate:"required"`
			BuildingTypeID uint `json:"buildingTypeId" validate:"required"`
			Level          int  `json:"level" validate:"required,min=1"`
		}
		var req Req
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		if err := buildingService.UpgradeLevel(req.UserID, req.BuildingTypeID, req.Level); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": fmt.Sprintf("Building upgraded to level %d", req.Level)})
	})

	grp.Get("/:userId", func(c *fiber.Ctx) error {
		userID, err := paramUserID(c, "userId")
		if err != nil {
			return errorResponse(c, err)
		}
		buildings, err := buildingService.UserBuildings(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(buildings)
	})
}
