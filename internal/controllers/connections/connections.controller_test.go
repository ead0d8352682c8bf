package connectionsController

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"linkfolio/config"
	"linkfolio/internal/models"
	"linkfolio/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.Profile
	cleared  []uuid.UUID
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*models.Profile{}}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	if profile, ok := f.profiles[userID]; ok {
		return profile, nil
	}
	return nil, assert.AnError
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *models.Profile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *models.Profile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) SetSpotifyConnection(
	_ context.Context,
	userID uuid.UUID,
	conn models.SpotifyConnection,
) error {
	if profile, ok := f.profiles[userID]; ok {
		profile.SpotifyConnected = true
		profile.SpotifyUsername = &conn.Username
		profile.SpotifyAccessToken = &conn.AccessToken
		profile.SpotifyRefreshToken = &conn.RefreshToken
		profile.SpotifyTokenExpiresAt = &conn.ExpiresAt
	}
	return nil
}

func (f *fakeProfileRepo) ClearSpotifyConnection(_ context.Context, userID uuid.UUID) error {
	f.cleared = append(f.cleared, userID)
	if profile, ok := f.profiles[userID]; ok {
		profile.SpotifyConnected = false
		profile.SpotifyUsername = nil
		profile.SpotifyAccessToken = nil
		profile.SpotifyRefreshToken = nil
		profile.SpotifyTokenExpiresAt = nil
	}
	return nil
}

func (f *fakeProfileRepo) SetDiscordConnection(
	_ context.Context,
	userID uuid.UUID,
	discordUserID, discordUsername string,
) error {
	if profile, ok := f.profiles[userID]; ok {
		profile.DiscordConnected = true
		profile.DiscordUserID = &discordUserID
		profile.DiscordUsername = &discordUsername
	}
	return nil
}

func (f *fakeProfileRepo) FindExpiringSpotifyTokens(
	_ context.Context,
	_ time.Duration,
) ([]models.Profile, error) {
	return nil, nil
}

func newTestController() ConnectionsControllerInterface {
	cfg := config.Config{
		SiteBaseURL:        "https://linkfolio.example.com",
		DiscordClientID:    "discord-client",
		DiscordRedirectURI: "https://linkfolio.example.com/api/auth/discord/callback",
		SpotifyClientID:    "spotify-client",
		SpotifyRedirectURI: "https://linkfolio.example.com/api/auth/spotify/callback",
	}

	return New(
		cfg,
		nil,
		nil,
		services.NewDiscordService(cfg),
		services.NewSpotifyService(cfg),
	)
}

func TestDiscordCallbackRedirect(t *testing.T) {
	controller := newTestController()

	testCases := []struct {
		name     string
		code     string
		state    string
		errParam string
		expected url.Values
	}{
		{
			name:     "provider error",
			errParam: "access_denied",
			code:     "ignored",
			expected: url.Values{"error": {"discord_auth_failed"}},
		},
		{
			name:     "missing code",
			expected: url.Values{"error": {"discord_code_missing"}},
		},
		{
			name:  "success forwards code and state verbatim",
			code:  "auth-code-123",
			state: "client-state",
			expected: url.Values{
				"provider": {"discord"},
				"code":     {"auth-code-123"},
				"state":    {"client-state"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			redirect := controller.DiscordCallbackRedirect(tc.code, tc.state, tc.errParam)

			assert.True(
				t,
				strings.HasPrefix(redirect, "https://linkfolio.example.com/auth/callback?"),
				"unexpected redirect base: %s", redirect,
			)

			parsed, err := url.Parse(redirect)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed.Query())
		})
	}
}

func TestSpotifyAuthURL_GeneratesState(t *testing.T) {
	controller := newTestController()

	authURL, state, err := controller.SpotifyAuthURL()
	require.NoError(t, err)
	assert.NotEmpty(t, state)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, state, parsed.Query().Get("state"))

	// Each call gets a fresh state
	_, second, err := controller.SpotifyAuthURL()
	require.NoError(t, err)
	assert.NotEqual(t, state, second)
}

func TestSpotifyCallbackRedirect_StateMismatch(t *testing.T) {
	controller := newTestController()
	userID := uuid.New()

	testCases := []struct {
		name        string
		state       string
		cookieState string
	}{
		{name: "missing cookie", state: "abc", cookieState: ""},
		{name: "mismatched state", state: "abc", cookieState: "xyz"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			redirect := controller.SpotifyCallbackRedirect(
				context.Background(), userID, "code", tc.state, tc.cookieState,
			)

			parsed, err := url.Parse(redirect)
			require.NoError(t, err)
			assert.Equal(t, "spotify_state_mismatch", parsed.Query().Get("error"))
		})
	}
}

func TestSpotifyCallbackRedirect_MissingCode(t *testing.T) {
	controller := newTestController()

	redirect := controller.SpotifyCallbackRedirect(
		context.Background(), uuid.New(), "", "same", "same",
	)

	parsed, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, "spotify_code_missing", parsed.Query().Get("error"))
}

func TestConnectDiscord_RequiresCode(t *testing.T) {
	controller := newTestController()

	err := controller.ConnectDiscord(context.Background(), uuid.New(), "")
	require.Error(t, err)
	assert.Equal(t, "authorization code is required", err.Error())
}

func TestConnectDiscord_RequiresConfiguredProvider(t *testing.T) {
	cfg := config.Config{SiteBaseURL: "https://linkfolio.example.com"}
	profileRepo := newFakeProfileRepo()
	controller := New(
		cfg,
		profileRepo,
		nil,
		services.NewDiscordService(cfg),
		services.NewSpotifyService(cfg),
	)

	userID := uuid.New()
	profileRepo.profiles[userID] = &models.Profile{UserID: userID}

	err := controller.ConnectDiscord(context.Background(), userID, "auth-code-123")
	require.Error(t, err)

	// The failed exchange must not leave a partial connection behind.
	profile := profileRepo.profiles[userID]
	assert.False(t, profile.DiscordConnected)
	assert.Nil(t, profile.DiscordUserID)
	assert.Nil(t, profile.DiscordUsername)
}

func TestDisconnectSpotify_Idempotent(t *testing.T) {
	cfg := config.Config{SiteBaseURL: "https://linkfolio.example.com"}
	profileRepo := newFakeProfileRepo()
	controller := New(
		cfg,
		profileRepo,
		nil,
		services.NewDiscordService(cfg),
		services.NewSpotifyService(cfg),
	)

	userID := uuid.New()
	username := "spotify-user"
	token := "access-token"
	expires := time.Now().Add(time.Hour)
	profileRepo.profiles[userID] = &models.Profile{
		UserID:                userID,
		SpotifyConnected:      true,
		SpotifyUsername:       &username,
		SpotifyAccessToken:    &token,
		SpotifyRefreshToken:   &token,
		SpotifyTokenExpiresAt: &expires,
	}

	require.NoError(t, controller.DisconnectSpotify(context.Background(), userID))
	require.NoError(t, controller.DisconnectSpotify(context.Background(), userID))

	profile := profileRepo.profiles[userID]
	assert.False(t, profile.SpotifyConnected)
	assert.Nil(t, profile.SpotifyUsername)
	assert.Nil(t, profile.SpotifyAccessToken)
	assert.Nil(t, profile.SpotifyRefreshToken)
	assert.Nil(t, profile.SpotifyTokenExpiresAt)
	assert.Len(t, profileRepo.cleared, 2)
}

func TestVerifyGuildMembership_RequiresLinkedDiscord(t *testing.T) {
	cfg := config.Config{SiteBaseURL: "https://linkfolio.example.com"}
	profileRepo := newFakeProfileRepo()
	controller := New(
		cfg,
		profileRepo,
		nil,
		services.NewDiscordService(cfg),
		services.NewSpotifyService(cfg),
	)

	userID := uuid.New()
	profileRepo.profiles[userID] = &models.Profile{UserID: userID}

	isMember, err := controller.VerifyGuildMembership(
		context.Background(), &models.User{BaseUUIDModel: models.BaseUUIDModel{ID: userID}},
	)
	require.NoError(t, err)
	assert.False(t, isMember)
}
