package handlers

import (
	"errors"
	"time"

	"linkfolio/internal/app"
	authController "linkfolio/internal/controllers/auth"
	connectionsController "linkfolio/internal/controllers/connections"
	"linkfolio/internal/handlers/middleware"
	"linkfolio/internal/models"
	"linkfolio/internal/services"

	logger "linkfolio/internal/logger"

	"github.com/gofiber/fiber/v2"
)

const spotifyStateCookie = "spotify_state"

type AuthHandler struct {
	Handler
	authController        authController.AuthControllerInterface
	connectionsController connectionsController.ConnectionsControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController:        app.AuthController,
		connectionsController: app.ConnectionsController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	auth.Post("/register", h.register)
	auth.Post("/login", h.login)

	// Provider callbacks arrive by browser redirect, outside our auth.
	auth.Get("/discord/callback", h.discordCallback)

	// The Spotify hop only hands out a state cookie and a redirect; the
	// session is required later, on the callback.
	auth.Get("/spotify", h.spotifyAuthURL)

	protected := auth.Group("/", h.middleware.RequireAuth())
	protected.Get("/me", h.getCurrentUser)
	protected.Post("/logout", h.logout)

	protected.Get("/discord", h.discordAuthURL)
	protected.Post("/discord/connect", h.connectDiscord)
	protected.Post("/discord/verify-membership", h.verifyMembership)

	protected.Get("/spotify/callback", h.spotifyCallback)

	// Account-level actions sit at the API root rather than under /auth.
	h.router.Post("/delete-account", h.middleware.RequireAuth(), h.deleteAccount)
	h.router.Post("/spotify/disconnect", h.middleware.RequireAuth(), h.disconnectSpotify)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("register")

	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, token, err := h.authController.Register(c.Context(), req)
	if err != nil {
		return authErrorResponse(c, err, "Failed to register")
	}

	setSessionCookie(c, token, h.middleware.Config.IsProduction())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user.ToProfile(),
		"token": token,
	})
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("login")

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, token, err := h.authController.Login(c.Context(), req)
	if err != nil {
		return authErrorResponse(c, err, "Failed to log in")
	}

	setSessionCookie(c, token, h.middleware.Config.IsProduction())

	return c.JSON(fiber.Map{
		"user":  user.ToProfile(),
		"token": token,
	})
}

func (h *AuthHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{
		"user": user.ToProfile(),
	})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("logout")

	token := middleware.GetSessionToken(c)
	if err := h.authController.Logout(c.Context(), token); err != nil {
		_ = log.Err("Failed to log out", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log out",
		})
	}

	clearSessionCookie(c)

	return c.JSON(fiber.Map{
		"message": "Logout successful",
	})
}

func (h *AuthHandler) deleteAccount(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("deleteAccount")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	token := middleware.GetSessionToken(c)
	if err := h.authController.DeleteAccount(c.Context(), user, token, req.Password); err != nil {
		return authErrorResponse(c, err, "Failed to delete account")
	}

	clearSessionCookie(c)

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *AuthHandler) discordAuthURL(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("discordAuthURL")

	state := c.Query("state")
	authURL, err := h.connectionsController.DiscordAuthURL(state)
	if err != nil {
		_ = log.Err("Failed to build Discord authorization URL", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Discord integration is not configured",
		})
	}

	return c.Redirect(authURL, fiber.StatusFound)
}

// discordCallback never surfaces an error page. Whatever the provider sent,
// the browser is redirected back to the site callback route.
func (h *AuthHandler) discordCallback(c *fiber.Ctx) error {
	redirect := h.connectionsController.DiscordCallbackRedirect(
		c.Query("code"),
		c.Query("state"),
		c.Query("error"),
	)

	return c.Redirect(redirect, fiber.StatusFound)
}

// connectDiscord finishes the linking flow with the code the callback handed
// back to the client.
func (h *AuthHandler) connectDiscord(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("connectDiscord")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.ConnectDiscordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.connectionsController.ConnectDiscord(c.Context(), user.ID, req.Code); err != nil {
		if err.Error() == "authorization code is required" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		_ = log.Err("Failed to connect Discord", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to connect Discord",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *AuthHandler) verifyMembership(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("verifyMembership")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	isMember, err := h.connectionsController.VerifyGuildMembership(c.Context(), user)
	if err != nil {
		_ = log.Err("Failed to verify guild membership", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify membership",
		})
	}

	return c.JSON(fiber.Map{
		"isMember": isMember,
	})
}

func (h *AuthHandler) spotifyAuthURL(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("spotifyAuthURL")

	authURL, state, err := h.connectionsController.SpotifyAuthURL()
	if err != nil {
		_ = log.Err("Failed to build Spotify authorization URL", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Spotify integration is not configured",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     spotifyStateCookie,
		Value:    state,
		Expires:  time.Now().Add(services.SpotifyStateTTL),
		HTTPOnly: true,
		Secure:   h.middleware.Config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Redirect(authURL, fiber.StatusFound)
}

func (h *AuthHandler) spotifyCallback(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	cookieState := c.Cookies(spotifyStateCookie)
	c.Cookie(&fiber.Cookie{
		Name:    spotifyStateCookie,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	redirect := h.connectionsController.SpotifyCallbackRedirect(
		c.Context(),
		user.ID,
		c.Query("code"),
		c.Query("state"),
		cookieState,
	)

	return c.Redirect(redirect, fiber.StatusFound)
}

func (h *AuthHandler) disconnectSpotify(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("disconnectSpotify")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	if err := h.connectionsController.DisconnectSpotify(c.Context(), user.ID); err != nil {
		_ = log.Err("Failed to disconnect Spotify", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to disconnect Spotify",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func setSessionCookie(c *fiber.Ctx, token string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(services.SESSION_TTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
}

func authErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	var authErr *authController.AuthError
	if errors.As(err, &authErr) {
		return c.Status(authErr.Code).JSON(fiber.Map{
			"error": authErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}
