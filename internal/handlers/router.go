package handlers

import (
	"linkfolio/internal/app"
	"linkfolio/internal/handlers/middleware"
	"linkfolio/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app)
	NewAuthHandler(*app, api).Register()
	NewSocialLinkHandler(*app, api).Register()
	NewMusicHandler(*app, api).Register()
	NewBadgeHandler(*app, api).Register()
	NewUploadHandler(*app, api).Register()

	return nil
}
