package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"linkfolio/config"
	"linkfolio/internal/app"
	connectionsController "linkfolio/internal/controllers/connections"
	"linkfolio/internal/database"
	"linkfolio/internal/handlers/middleware"
	"linkfolio/internal/repositories"
	"linkfolio/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		GeneralVersion:     "test",
		SiteBaseURL:        "https://linkfolio.example.com",
		DiscordClientID:    "discord-client",
		DiscordRedirectURI: "https://linkfolio.example.com/api/auth/discord/callback",
		SpotifyClientID:    "spotify-client",
		SpotifyRedirectURI: "https://linkfolio.example.com/api/auth/spotify/callback",
	}

	testApp := &app.App{
		Config:     cfg,
		Middleware: middleware.New(database.DB{}, nil, cfg, repositories.Repository{}),
		ConnectionsController: connectionsController.New(
			cfg,
			nil,
			nil,
			services.NewDiscordService(cfg),
			services.NewSpotifyService(cfg),
		),
	}

	fiberApp := fiber.New()
	require.NoError(t, Router(fiberApp, testApp))
	return fiberApp
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	resp, err := router.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/social-links"},
		{http.MethodPost, "/api/social-links"},
		{http.MethodPut, "/api/social-links/reorder"},
		{http.MethodGet, "/api/music/tracks"},
		{http.MethodPut, "/api/music/tracks/reorder"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodPost, "/api/delete-account"},
		{http.MethodPost, "/api/auth/discord/connect"},
		{http.MethodPost, "/api/auth/discord/verify-membership"},
		{http.MethodGet, "/api/auth/discord"},
		{http.MethodPost, "/api/spotify/disconnect"},
		{http.MethodPost, "/api/badges/admin/assign"},
		{http.MethodPost, "/api/upload"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			resp, err := router.Test(httptest.NewRequest(route.method, route.path, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestDiscordCallbackRedirects(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "provider error",
			query:    "?error=access_denied",
			expected: "error=discord_auth_failed",
		},
		{
			name:     "missing code",
			query:    "",
			expected: "error=discord_code_missing",
		},
		{
			name:     "code forwarded",
			query:    "?code=abc123&state=xyz",
			expected: "provider=discord",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := router.Test(httptest.NewRequest(
				http.MethodGet, "/api/auth/discord/callback"+tc.query, nil,
			))
			require.NoError(t, err)
			assert.Equal(t, http.StatusFound, resp.StatusCode)

			location, err := url.Parse(resp.Header.Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, "linkfolio.example.com", location.Host)
			assert.Equal(t, "/auth/callback", location.Path)
			assert.Contains(t, resp.Header.Get("Location"), tc.expected)
		})
	}
}

func TestSpotifyAuthorizeRedirects(t *testing.T) {
	router := newTestRouter(t)

	resp, err := router.Test(httptest.NewRequest(http.MethodGet, "/api/auth/spotify", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.spotify.com", location.Host)
	assert.Equal(t, "spotify-client", location.Query().Get("client_id"))

	var stateCookie string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "spotify_state" {
			stateCookie = cookie.Value
		}
	}
	require.NotEmpty(t, stateCookie)
	assert.Equal(t, stateCookie, location.Query().Get("state"))
}

func TestPublicLinksRejectsBadUserID(t *testing.T) {
	router := newTestRouter(t)

	resp, err := router.Test(httptest.NewRequest(http.MethodGet, "/api/social-links/public/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPublicBadgesRejectsBadUserID(t *testing.T) {
	router := newTestRouter(t)

	resp, err := router.Test(httptest.NewRequest(http.MethodGet, "/api/badges/public/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
