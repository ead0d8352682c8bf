package middleware

import (
	"context"
	"strings"

	"linkfolio/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

// AuthContextKey is used to store auth info in context
type AuthContextKey string

const (
	UserKey      AuthContextKey = "user"
	UserKeyFiber string         = "User" // Fiber context key (string)
	TokenKey     string         = "SessionToken"

	SessionCookieName = "session_token"
)

// RequireAuth resolves the session token from the session cookie or the
// Authorization header and loads the owning user into the request context.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireAuth")

		token := sessionToken(c)
		if token == "" {
			log.Info("missing session token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		session, err := m.sessionService.Get(c.Context(), token)
		if err != nil {
			log.Info("session lookup failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid session",
			})
		}
		if session == nil {
			log.Info("session not found or expired")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid session",
			})
		}

		user, err := m.userRepo.GetByID(c.Context(), session.UserID)
		if err != nil {
			log.Info("user not found for session", "userID", session.UserID, "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if !user.IsActive {
			log.Info("inactive user rejected", "userID", user.ID)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Account disabled",
			})
		}

		c.Locals(UserKeyFiber, user)
		c.Locals(TokenKey, token)

		ctx := context.WithValue(c.UserContext(), UserKey, user)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookieName); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return ""
	}

	return tokenParts[1]
}

// GetUser extracts the authenticated user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetSessionToken extracts the resolved session token from Fiber context
func GetSessionToken(c *fiber.Ctx) string {
	token, ok := c.Locals(TokenKey).(string)
	if !ok {
		return ""
	}
	return token
}
