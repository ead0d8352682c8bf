package handlers

import (
	"linkfolio/internal/app"
	"linkfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, app *app.App) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": app.Config.GeneralVersion,
			"service": "linkfolio_api",
		})
	})

	router.Get("/health/database", func(c *fiber.Ctx) error {
		sqlOK, cacheOK := app.Database.Ping(c.Context())

		status := "ok"
		code := fiber.StatusOK
		if !sqlOK || !cacheOK {
			status = "degraded"
			code = fiber.StatusServiceUnavailable
		}

		response := fiber.Map{
			"status":   status,
			"database": sqlOK,
			"cache":    cacheOK,
		}

		if sqlOK {
			db := app.Database.SQLWithContext(c.Context())
			counts := fiber.Map{}
			var n int64
			if err := db.Model(&models.User{}).Count(&n).Error; err == nil {
				counts["users"] = n
			}
			if err := db.Model(&models.SocialLink{}).Count(&n).Error; err == nil {
				counts["social_links"] = n
			}
			if err := db.Model(&models.MusicTrack{}).Count(&n).Error; err == nil {
				counts["music_tracks"] = n
			}
			response["counts"] = counts
		}

		return c.Status(code).JSON(response)
	})
}
