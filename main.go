package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"logistics-erp/cache"
	"logistics-erp/database"
	"logistics-erp/logger"
	"logistics-erp/routes"
	"logistics-erp/services/mailer"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768,
		WriteBufferSize: 32768,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       50 * 1024 * 1024, // bulk uploads and label files
	})
	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded")
	}

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	// Redis is optional; without it the dashboard just skips its cache.
	var cacheClient *cache.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cacheClient, err = cache.Initialize(redisURL)
		if err != nil {
			logger.Warning("Redis unavailable, dashboard caching disabled: " + err.Error())
			cacheClient = nil
		} else {
			logger.Success("Connected to Redis")
		}
	}

	// The mail sender is verified once here so a bad SMTP configuration shows
	// up at startup, but a failure only disables notifications.
	var sender mailer.Sender
	if os.Getenv("MAIL_HOST") != "" {
		smtp := mailer.NewSMTPSenderFromEnv()
		if err := smtp.Verify(); err != nil {
			logger.Warning("SMTP verification failed, notifications disabled: " + err.Error())
		} else {
			logger.Success("SMTP transport verified")
			sender = smtp
		}
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	app.Static("/uploads", uploadDir)

	routes.SetupRoutes(app, db, routes.Deps{
		Cache:     cacheClient,
		Mailer:    sender,
		UploadDir: uploadDir,
	})

	appHost := os.Getenv("APP_HOST")
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "4000"
	}
	logger.Success("Server is running on " + appHost + ":" + appPort)
	if err := app.Listen(appHost + ":" + appPort); err != nil {
		logger.Error("Server stopped", err)
	}
}
