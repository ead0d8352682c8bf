package middleware

import (
	"linkfolio/config"
	"linkfolio/internal/database"
	"linkfolio/internal/repositories"
	"linkfolio/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB             database.DB
	userRepo       repositories.UserRepository
	sessionService *services.SessionService
	Config         config.Config
	log            logger.Logger
}

func New(
	db database.DB,
	sessionService *services.SessionService,
	config config.Config,
	repos repositories.Repository,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:             db,
		userRepo:       repos.User,
		sessionService: sessionService,
		Config:         config,
		log:            log,
	}
}
