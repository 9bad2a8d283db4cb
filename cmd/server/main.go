package main

import (
	"context"
	"log"

	"github.com/Job-Wilhelm/course-booking/internal/config"
	"github.com/Job-Wilhelm/course-booking/internal/database"
	"github.com/Job-Wilhelm/course-booking/internal/middleware"
	"github.com/Job-Wilhelm/course-booking/internal/routes"
	"github.com/Job-Wilhelm/course-booking/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger
	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. Connect to Database
	if cfg.DBUrl == "" {
		logger.Log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(context.Background(), cfg.DBUrl, cfg.DBMaxConns); err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB()

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "course-booking",
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, database.DB); err != nil {
		logger.Log.Fatal("failed to register routes", zap.Error(err))
	}

	// 5. Start Server
	logger.Log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("server failed to start", zap.Error(err))
	}
}
