package handlers

import (
	"errors"
	"strconv"

	"linkfolio/internal/app"
	badgesController "linkfolio/internal/controllers/badges"
	"linkfolio/internal/handlers/middleware"
	"linkfolio/internal/models"

	logger "linkfolio/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BadgeHandler struct {
	Handler
	badgesController badgesController.BadgesControllerInterface
}

func NewBadgeHandler(app app.App, router fiber.Router) *BadgeHandler {
	log := logger.New("handlers").File("badge_handler")
	return &BadgeHandler{
		badgesController: app.BadgesController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *BadgeHandler) Register() {
	badges := h.router.Group("/badges")

	badges.Get("/public/:userId", h.getPublicBadges)

	admin := badges.Group("/admin", h.middleware.RequireAuth(), h.middleware.RequireAdmin())
	admin.Post("/assign", h.assignBadge)
	admin.Post("/revoke", h.revokeBadge)
	admin.Get("/logs", h.getLogs)
}

func (h *BadgeHandler) getPublicBadges(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("badge_handler").Function("getPublicBadges")

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	badges, err := h.badgesController.ListForUser(c.Context(), userID)
	if err != nil {
		_ = log.Err("Failed to retrieve badges", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve badges",
		})
	}

	return c.JSON(fiber.Map{
		"badges": badges,
	})
}

func (h *BadgeHandler) assignBadge(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("badge_handler").Function("assignBadge")

	admin := middleware.GetUser(c)
	if admin == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.AssignBadgeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.badgesController.Assign(c.Context(), admin, req); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Badge not found",
			})
		}
		_ = log.Err("Failed to assign badge", err, "adminID", admin.ID, "badge", req.BadgeName)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to assign badge",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *BadgeHandler) revokeBadge(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("badge_handler").Function("revokeBadge")

	admin := middleware.GetUser(c)
	if admin == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.AssignBadgeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.badgesController.Revoke(c.Context(), admin, req); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Badge not found",
			})
		}
		_ = log.Err("Failed to revoke badge", err, "adminID", admin.ID, "badge", req.BadgeName)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to revoke badge",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *BadgeHandler) getLogs(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("badge_handler").Function("getLogs")

	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	logs, err := h.badgesController.ListLogs(c.Context(), limit)
	if err != nil {
		_ = log.Err("Failed to retrieve admin logs", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve logs",
		})
	}

	return c.JSON(fiber.Map{
		"logs": logs,
	})
}
