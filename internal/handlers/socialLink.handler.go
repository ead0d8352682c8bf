package handlers

import (
	"errors"

	"linkfolio/internal/app"
	linksController "linkfolio/internal/controllers/links"
	"linkfolio/internal/handlers/middleware"
	"linkfolio/internal/models"

	logger "linkfolio/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SocialLinkHandler struct {
	Handler
	linksController linksController.LinksControllerInterface
}

func NewSocialLinkHandler(app app.App, router fiber.Router) *SocialLinkHandler {
	log := logger.New("handlers").File("socialLink_handler")
	return &SocialLinkHandler{
		linksController: app.LinksController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SocialLinkHandler) Register() {
	links := h.router.Group("/social-links")

	links.Get("/public/:userId", h.getPublicLinks)

	protected := links.Group("/", h.middleware.RequireAuth())
	protected.Get("", h.getLinks)
	protected.Post("", h.createLink)
	protected.Put("/reorder", h.reorderLinks)
	protected.Put("/:id", h.updateLink)
	protected.Delete("/:id", h.deleteLink)
}

func (h *SocialLinkHandler) getPublicLinks(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("socialLink_handler").Function("getPublicLinks")

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	links, err := h.linksController.ListPublic(c.Context(), userID)
	if err != nil {
		_ = log.Err("Failed to retrieve public links", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve links",
		})
	}

	return c.JSON(fiber.Map{
		"links": links,
	})
}

func (h *SocialLinkHandler) getLinks(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("socialLink_handler").Function("getLinks")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	links, err := h.linksController.List(c.Context(), user.ID)
	if err != nil {
		_ = log.Err("Failed to retrieve links", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve links",
		})
	}

	return c.JSON(fiber.Map{
		"links": links,
	})
}

func (h *SocialLinkHandler) createLink(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("socialLink_handler").Function("createLink")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.CreateSocialLinkRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	link, err := h.linksController.Create(c.Context(), user.ID, req)
	if err != nil {
		if err.Error() == "platform is required" || err.Error() == "url is required" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("Failed to create link", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create link",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"link": link,
	})
}

func (h *SocialLinkHandler) updateLink(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("socialLink_handler").Function("updateLink")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	linkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid link id",
		})
	}

	var req models.UpdateSocialLinkRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	link, err := h.linksController.Update(c.Context(), user.ID, linkID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Link not found",
			})
		}
		_ = log.Err("Failed to update link", err, "userID", user.ID, "linkID", linkID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update link",
		})
	}

	return c.JSON(fiber.Map{
		"link": link,
	})
}

func (h *SocialLinkHandler) deleteLink(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("socialLink_handler").Function("deleteLink")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	linkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid link id",
		})
	}

	if err := h.linksController.Delete(c.Context(), user.ID, linkID); err != nil {
		_ = log.Err("Failed to delete link", err, "userID", user.ID, "linkID", linkID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete link",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Link deleted",
	})
}

func (h *SocialLinkHandler) reorderLinks(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("socialLink_handler").Function("reorderLinks")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.ReorderLinksRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.linksController.Reorder(c.Context(), user.ID, req.Links); err != nil {
		_ = log.Err("Failed to reorder links", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reorder links",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
