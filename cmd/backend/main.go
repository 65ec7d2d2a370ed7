// Command backend serves a local stand-in for the backend root endpoint.
package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"

	"homepage/internal/config"
	handlers "homepage/internal/http/handler"
	"homepage/internal/http/middleware"
	"homepage/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, config.LogConfig{}).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, cfg.Log)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	handlers.RegisterStubRoutes(app)

	log.Info("backend stub starting", "port", cfg.Stub.Port)
	if err := app.Listen(":" + cfg.Stub.Port); err != nil {
		log.Error("failed to start backend stub", "error", err)
		os.Exit(1)
	}
}
