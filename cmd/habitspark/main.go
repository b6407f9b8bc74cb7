package main

import (
	"log/slog"
	"os"

	"github.com/andrewwoood/habitspark/internal/config"
	"github.com/andrewwoood/habitspark/internal/database"
	"github.com/andrewwoood/habitspark/internal/groups"
	"github.com/andrewwoood/habitspark/internal/habits"
	"github.com/andrewwoood/habitspark/internal/handlers"
	"github.com/andrewwoood/habitspark/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	// The group manager listens for habit completion toggles so group daily
	// stats stay consistent with member activity.
	groupManager := groups.NewManager(db, cfg.InviteLinkBase)
	habitStore := habits.NewStore(db, groupManager)

	app := fiber.New(fiber.Config{AppName: "habitspark"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Setup(app, handlers.New(db, cfg.JWTSecret, habitStore, groupManager), cfg.JWTSecret)

	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
