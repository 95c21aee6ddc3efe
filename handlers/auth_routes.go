package handlers

import (
	"time"

	"stepwars-server/middleware"
	"stepwars-server/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService, db *gorm.DB) {
	app.Post("/auth/register", func(c *fiber.Ctx) error {
		type Req struct {
			Username string `json:"username" validate:"required,max=50"`
			Email    string `json:"email" validate:"required,email,max=100"`
			Password string `json:"password" validate:"required,min=6"`
			Tribe    string `json:"tribe" validate:"required,max=50"`
			Avatar   string `json:"avatar"`
		}
		var req Req
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		user, err := authService.Register(services.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Tribe:    req.Tribe,
			Avatar:   req.Avatar,
		})
		if err != nil {
			return errorResponse(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User registered successfully",
			"user":    user,
		})
	})

	app.Post("/auth/login", func(c *fiber.Ctx) error {
		type Req struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		}
		var req Req
		if err := parseBody(c, &req); err != nil {
			return errorResponse(c, err)
		}

		user, session, err := authService.Login(req.Email, req.Password)
		if err != nil {
			return errorResponse(c, err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     "token",
			Value:    session.Token,
			Expires:  session.ExpiresAt,
			HTTPOnly: true,
			SameSite: "Strict",
			Path:     "/",
		})

		return c.JSON(fiber.Map{
			"message": "Login successful",
			"user":    user,
		})
	})

	app.Post("/auth/logout", func(c *fiber.Ctx) error {
		if err := authService.Logout(c.Cookies("token")); err != nil {
			return errorResponse(c, err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     "token",
			Value:    "",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			SameSite: "Strict",
			Path:     "/",
		})

		return c.JSON(fiber.Map{"message": "Logout successful"})
	})

	authed := app.Group("/auth", middleware.SessionAuth(db))

	authed.Get("/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)
		user, err := authService.Profile(userID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"user": user})
	})
}
