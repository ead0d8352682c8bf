package services

import (
	"net/url"
	"testing"
	"time"

	"linkfolio/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func spotifyTestConfig() config.Config {
	return config.Config{
		SpotifyClientID:     "client-id",
		SpotifyClientSecret: "client-secret",
		SpotifyRedirectURI:  "https://example.com/api/auth/spotify/callback",
	}
}

func TestSpotifyService_GetAuthorizationURL(t *testing.T) {
	service := NewSpotifyService(spotifyTestConfig())

	authURL, err := service.GetAuthorizationURL("state-token")
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)

	assert.Equal(t, "accounts.spotify.com", parsed.Host)
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
	assert.Equal(t, "state-token", parsed.Query().Get("state"))
	assert.Contains(t, parsed.Query().Get("scope"), "user-read-private")
}

func TestSpotifyService_NotConfigured(t *testing.T) {
	service := NewSpotifyService(config.Config{})

	assert.False(t, service.IsConfigured())

	_, err := service.GetAuthorizationURL("state")
	assert.Error(t, err)
}

func TestToConnection(t *testing.T) {
	expiry := time.Now().Add(time.Hour)

	t.Run("full token", func(t *testing.T) {
		conn := ToConnection(&oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			Expiry:       expiry,
		}, "spotify-user", "")

		assert.Equal(t, "spotify-user", conn.Username)
		assert.Equal(t, "access", conn.AccessToken)
		assert.Equal(t, "refresh", conn.RefreshToken)
		assert.Equal(t, expiry, conn.ExpiresAt)
	})

	t.Run("refresh response without refresh token keeps the previous one", func(t *testing.T) {
		conn := ToConnection(&oauth2.Token{
			AccessToken: "new-access",
			Expiry:      expiry,
		}, "spotify-user", "old-refresh")

		assert.Equal(t, "new-access", conn.AccessToken)
		assert.Equal(t, "old-refresh", conn.RefreshToken)
	})
}
