package app

import (
	"context"
	"roaddogs/config"
	"roaddogs/internal/database"
	"roaddogs/internal/events"
	"roaddogs/internal/handlers/middleware"
	"roaddogs/internal/logger"
	"roaddogs/internal/repositories"
	"roaddogs/internal/services"
	"roaddogs/internal/storage"
	"roaddogs/internal/websockets"

	adminController "roaddogs/internal/controllers/admin"
	applicationController "roaddogs/internal/controllers/application"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Storage    storage.ObjectStore
	Config     config.Config

	// Services
	TransactionService *services.TransactionService
	AuthService        *services.AuthService

	// Repositories
	ApplicationRepo repositories.ApplicationRepository
	UserRepo        repositories.UserRepository

	// Controllers
	ApplicationController *applicationController.ApplicationController
	AdminController       *adminController.AdminController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	store, err := storage.NewS3Store(context.Background(), config)
	if err != nil {
		return &App{}, log.Err("failed to create object store", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	applicationRepo := repositories.NewApplication(db)
	userRepo := repositories.NewUser(db)

	authService := services.NewAuthService(db, userRepo, config)

	// Initialize controllers with repositories and services
	middleware := middleware.New(authService, config)
	applicationController := applicationController.New(applicationRepo, store, eventBus, config)
	adminController := adminController.New(applicationRepo, store, eventBus, config)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:              db,
		Config:                config,
		Middleware:            middleware,
		Storage:               store,
		TransactionService:    transactionService,
		AuthService:           authService,
		ApplicationRepo:       applicationRepo,
		UserRepo:              userRepo,
		ApplicationController: applicationController,
		AdminController:       adminController,
		Websocket:             websocket,
		EventBus:              eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Storage,
		a.TransactionService,
		a.AuthService,
		a.ApplicationController,
		a.AdminController,
		a.Middleware,
		a.ApplicationRepo,
		a.UserRepo,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
