package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"roaddogs/cmd/migration/initialize"
	"roaddogs/cmd/migration/seed"
	"roaddogs/internal/app"
	"roaddogs/internal/handlers"
	"roaddogs/internal/logger"

	"github.com/gofiber/fiber/v2"
)

func main() {
	logger.Init(slog.LevelInfo, os.Getenv("LOG_JSON") == "true")
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize app", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close app", err)
		}
	}()

	if err := initialize.InitializeTables(application.Database.SQL, application.Config, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if err := seed.Seed(application.Database.SQL, application.Config, log); err != nil {
		log.Er("failed to seed data", err)
		os.Exit(1)
	}

	server := fiber.New(fiber.Config{
		AppName:   "roaddogs",
		BodyLimit: 6 * 1024 * 1024, // intake rejects anything over 5 MB
	})

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server")
		_ = server.Shutdown()
	}()

	address := fmt.Sprintf(":%d", application.Config.ServerPort)
	log.Info("Starting server", "address", address)
	if err := server.Listen(address); err != nil {
		log.Er("server stopped", err)
		os.Exit(1)
	}
}
