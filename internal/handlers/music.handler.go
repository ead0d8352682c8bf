package handlers

import (
	"linkfolio/internal/app"
	musicController "linkfolio/internal/controllers/music"
	"linkfolio/internal/handlers/middleware"
	"linkfolio/internal/models"

	logger "linkfolio/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MusicHandler struct {
	Handler
	musicController musicController.MusicControllerInterface
}

func NewMusicHandler(app app.App, router fiber.Router) *MusicHandler {
	log := logger.New("handlers").File("music_handler")
	return &MusicHandler{
		musicController: app.MusicController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MusicHandler) Register() {
	tracks := h.router.Group("/music/tracks", h.middleware.RequireAuth())

	tracks.Get("", h.getTracks)
	tracks.Post("", h.createTrack)
	tracks.Put("/reorder", h.reorderTracks)
	tracks.Delete("/:id", h.deleteTrack)
}

func (h *MusicHandler) getTracks(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("music_handler").Function("getTracks")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	tracks, err := h.musicController.List(c.Context(), user.ID)
	if err != nil {
		_ = log.Err("Failed to retrieve tracks", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve tracks",
		})
	}

	return c.JSON(fiber.Map{
		"tracks": tracks,
	})
}

func (h *MusicHandler) createTrack(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("music_handler").Function("createTrack")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.CreateMusicTrackRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	track, err := h.musicController.Create(c.Context(), user.ID, req)
	if err != nil {
		if err.Error() == "title is required" || err.Error() == "track url is required" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("Failed to create track", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create track",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"track": track,
	})
}

func (h *MusicHandler) deleteTrack(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("music_handler").Function("deleteTrack")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	trackID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid track id",
		})
	}

	if err := h.musicController.Delete(c.Context(), user.ID, trackID); err != nil {
		_ = log.Err("Failed to delete track", err, "userID", user.ID, "trackID", trackID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete track",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Track deleted",
	})
}

func (h *MusicHandler) reorderTracks(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("music_handler").Function("reorderTracks")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.ReorderTracksRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.musicController.Reorder(c.Context(), user.ID, req.Tracks); err != nil {
		_ = log.Err("Failed to reorder tracks", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reorder tracks",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
