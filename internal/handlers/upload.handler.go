package handlers

import (
	"linkfolio/internal/app"
	"linkfolio/internal/handlers/middleware"
	"linkfolio/internal/services"

	logger "linkfolio/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	Handler
	storageService *services.StorageService
}

func NewUploadHandler(app app.App, router fiber.Router) *UploadHandler {
	log := logger.New("handlers").File("upload_handler")
	return &UploadHandler{
		storageService: app.StorageService,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UploadHandler) Register() {
	upload := h.router.Group("/upload", h.middleware.RequireAuth())

	upload.Post("", h.uploadFile)
}

func (h *UploadHandler) uploadFile(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("upload_handler").Function("uploadFile")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	if h.storageService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "File storage is not configured",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Missing file in upload request", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = log.Err("Failed to open uploaded file", err, "filename", fileHeader.Filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storageService.Upload(c.Context(), user.ID, fileHeader.Filename, contentType, file)
	if err != nil {
		_ = log.Err("Failed to upload file", err, "userID", user.ID, "filename", fileHeader.Filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}
