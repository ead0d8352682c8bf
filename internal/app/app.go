package app

import (
	"context"

	"linkfolio/config"
	"linkfolio/internal/database"
	"linkfolio/internal/handlers/middleware"
	"linkfolio/internal/jobs"
	"linkfolio/internal/logger"
	"linkfolio/internal/repositories"
	"linkfolio/internal/services"

	authController "linkfolio/internal/controllers/auth"
	badgesController "linkfolio/internal/controllers/badges"
	connectionsController "linkfolio/internal/controllers/connections"
	linksController "linkfolio/internal/controllers/links"
	musicController "linkfolio/internal/controllers/music"

	"golang.org/x/crypto/bcrypt"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	SessionService   *services.SessionService
	PasswordService  *services.PasswordService
	DiscordService   *services.DiscordService
	SpotifyService   *services.SpotifyService
	StorageService   *services.StorageService
	SchedulerService *services.SchedulerService

	// Repositories
	Repository repositories.Repository

	// Controllers
	AuthController        authController.AuthControllerInterface
	ConnectionsController connectionsController.ConnectionsControllerInterface
	LinksController       linksController.LinksControllerInterface
	MusicController       musicController.MusicControllerInterface
	BadgesController      badgesController.BadgesControllerInterface
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

	// Outside production the schema is kept current at startup; production
	// relies on the migration command.
	if !config.IsProduction() {
		if err := db.MigrateModels(); err != nil {
			return &App{}, log.Err("failed to migrate database models", err)
		}
	}

	// Initialize services
	sessionService := services.NewSessionService(db)
	passwordService := services.NewPasswordService(bcrypt.DefaultCost)
	discordService := services.NewDiscordService(config)
	spotifyService := services.NewSpotifyService(config)
	schedulerService := services.NewSchedulerService()

	// Object storage is optional; without a configured bucket the upload
	// endpoint reports itself unavailable instead of failing startup.
	var storageService *services.StorageService
	if config.StorageBucket != "" {
		storageService, err = services.NewStorageService(context.Background(), config)
		if err != nil {
			return &App{}, log.Err("failed to create storage service", err)
		}
	}

	// Initialize repositories
	repository := repositories.New(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, sessionService, config, repository)
	authController := authController.New(
		repository.User,
		repository.Profile,
		sessionService,
		passwordService,
	)
	connectionsController := connectionsController.New(
		config,
		repository.Profile,
		repository.Badge,
		discordService,
		spotifyService,
	)
	linksController := linksController.New(repository.SocialLink)
	musicController := musicController.New(repository.MusicTrack)
	badgesController := badgesController.New(repository.Badge, repository.AdminLog)

	// Register jobs with scheduler if enabled
	if config.SchedulerEnabled {
		tokenRefreshJob := jobs.NewSpotifyTokenRefreshJob(
			repository.Profile,
			spotifyService,
			services.Hourly,
		)
		if err := schedulerService.AddJob(tokenRefreshJob); err != nil {
			return &App{}, log.Err("failed to register Spotify token refresh job", err)
		}
		log.Info("Registered Spotify token refresh job with scheduler")

		if err := schedulerService.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:              db,
		Config:                config,
		Middleware:            middleware,
		SessionService:        sessionService,
		PasswordService:       passwordService,
		DiscordService:        discordService,
		SpotifyService:        spotifyService,
		StorageService:        storageService,
		SchedulerService:      schedulerService,
		Repository:            repository,
		AuthController:        authController,
		ConnectionsController: connectionsController,
		LinksController:       linksController,
		MusicController:       musicController,
		BadgesController:      badgesController,
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

	nilChecks := []any{
		a.SessionService,
		a.PasswordService,
		a.DiscordService,
		a.SpotifyService,
		a.SchedulerService,
		a.AuthController,
		a.ConnectionsController,
		a.LinksController,
		a.MusicController,
		a.BadgesController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.SchedulerService != nil {
		if closeErr := a.SchedulerService.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
