package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"stepwars-server/handlers"
	"stepwars-server/models"
	"stepwars-server/services"
	"stepwars-server/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // avatars only
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.UserStats{},
		&models.UserResources{},
		&models.UserSteps{},
		&models.BuildingType{},
		&models.WarriorType{},
		&models.UserBuilding{},
		&models.UserWarrior{},
		&models.WarriorTraining{},
		&models.WarriorUpgrade{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	catalogService := services.NewCatalogService(db)
	if err := catalogService.Load(); err != nil {
		log.Fatal("failed to load catalogs:", err)
	}

	authService := services.NewAuthService(db, catalogService)
	userService := services.NewUserService(db)
	stepsService := services.NewStepsService(db)
	buildingService := services.NewBuildingService(db, catalogService)
	warriorService := services.NewWarriorService(db)

	// Queue resolution is pull-based: clients hit the apply endpoints. The
	// background sweep is an opt-in alternative driving the same resolver.
	if strings.EqualFold(os.Getenv("QUEUE_SWEEP_ENABLED"), "true") {
		warriorService.StartQueueSweeper()
	}

	handlers.SetupAuthRoutes(app, authService, db)
	handlers.SetupUserRoutes(app, userService, authService, db)
	handlers.SetupStepsRoutes(app, stepsService, db)
	handlers.SetupBuildingRoutes(app, buildingService, catalogService, db)
	handlers.SetupWarriorRoutes(app, warriorService, catalogService, db)

	app.Static("/uploads", "./uploads")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Stepwars Game API is running!")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
