package connectionsController

import (
	"context"
	"errors"
	"net/url"

	"linkfolio/config"
	"linkfolio/internal/logger"
	"linkfolio/internal/models"
	"linkfolio/internal/repositories"
	"linkfolio/internal/services"
	"linkfolio/internal/utils"

	"github.com/google/uuid"
)

const stateTokenBytes = 16

// ConnectionsController drives the third-party account linking flows.
type ConnectionsController struct {
	config         config.Config
	profileRepo    repositories.ProfileRepository
	badgeRepo      repositories.BadgeRepository
	discordService *services.DiscordService
	spotifyService *services.SpotifyService
	log            logger.Logger
}

type ConnectionsControllerInterface interface {
	DiscordAuthURL(state string) (string, error)
	DiscordCallbackRedirect(code, state, errParam string) string
	ConnectDiscord(ctx context.Context, userID uuid.UUID, code string) error
	SpotifyAuthURL() (authURL, state string, err error)
	SpotifyCallbackRedirect(ctx context.Context, userID uuid.UUID, code, state, cookieState string) string
	DisconnectSpotify(ctx context.Context, userID uuid.UUID) error
	VerifyGuildMembership(ctx context.Context, user *models.User) (bool, error)
}

func New(
	cfg config.Config,
	profileRepo repositories.ProfileRepository,
	badgeRepo repositories.BadgeRepository,
	discordService *services.DiscordService,
	spotifyService *services.SpotifyService,
) ConnectionsControllerInterface {
	return &ConnectionsController{
		config:         cfg,
		profileRepo:    profileRepo,
		badgeRepo:      badgeRepo,
		discordService: discordService,
		spotifyService: spotifyService,
		log:            logger.New("connectionsController"),
	}
}

func (c *ConnectionsController) DiscordAuthURL(state string) (string, error) {
	return c.discordService.GetAuthorizationURL(state)
}

// DiscordCallbackRedirect resolves the provider callback to a redirect URL.
// Every input resolves to some redirect; the caller is never left on an
// error page.
func (c *ConnectionsController) DiscordCallbackRedirect(code, state, errParam string) string {
	if errParam != "" {
		return c.callbackURL(url.Values{"error": {"discord_auth_failed"}})
	}

	if code == "" {
		return c.callbackURL(url.Values{"error": {"discord_code_missing"}})
	}

	// Forward code and state verbatim; the token exchange happens when the
	// client posts the code back through ConnectDiscord.
	return c.callbackURL(url.Values{
		"provider": {"discord"},
		"code":     {code},
		"state":    {state},
	})
}

// ConnectDiscord completes the linking flow with the code the callback handed
// to the client: it exchanges the code, resolves the Discord account, and
// stores the connection on the profile.
func (c *ConnectionsController) ConnectDiscord(
	ctx context.Context,
	userID uuid.UUID,
	code string,
) error {
	log := c.log.Function("ConnectDiscord")

	if code == "" {
		return errors.New("authorization code is required")
	}

	if !c.discordService.IsConfigured() {
		return log.Error("discord oauth is not configured")
	}

	token, err := c.discordService.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	info, err := c.discordService.GetUserInfo(ctx, token)
	if err != nil {
		return err
	}

	if err := c.profileRepo.SetDiscordConnection(ctx, userID, info.ID, info.Username); err != nil {
		return log.Err("failed to store discord connection", err, "userID", userID)
	}

	log.Info("discord account connected", "userID", userID, "discordUserID", info.ID)
	return nil
}

// SpotifyAuthURL generates a fresh CSRF state and the authorize URL carrying
// it. The caller is responsible for persisting the state in a cookie.
func (c *ConnectionsController) SpotifyAuthURL() (string, string, error) {
	log := c.log.Function("SpotifyAuthURL")

	if !c.spotifyService.IsConfigured() {
		return "", "", log.Error("spotify is not configured")
	}

	state, err := utils.GenerateToken(stateTokenBytes)
	if err != nil {
		return "", "", log.Err("failed to generate state token", err)
	}

	authURL, err := c.spotifyService.GetAuthorizationURL(state)
	if err != nil {
		return "", "", err
	}

	return authURL, state, nil
}

// SpotifyCallbackRedirect completes the connect flow: it verifies the
// returned state against the cookie value, exchanges the code, fetches the
// Spotify profile and stores the full connection field set in one update.
// Like the Discord callback it always resolves to a redirect.
func (c *ConnectionsController) SpotifyCallbackRedirect(
	ctx context.Context,
	userID uuid.UUID,
	code, state, cookieState string,
) string {
	log := c.log.Function("SpotifyCallbackRedirect")

	if cookieState == "" || state != cookieState {
		log.Info("spotify state mismatch", "userID", userID)
		return c.callbackURL(url.Values{"error": {"spotify_state_mismatch"}})
	}

	if code == "" {
		return c.callbackURL(url.Values{"error": {"spotify_code_missing"}})
	}

	token, err := c.spotifyService.ExchangeCode(ctx, code)
	if err != nil {
		return c.callbackURL(url.Values{"error": {"spotify_exchange_failed"}})
	}

	info, err := c.spotifyService.GetUserInfo(ctx, token)
	if err != nil {
		return c.callbackURL(url.Values{"error": {"spotify_profile_failed"}})
	}

	conn := services.ToConnection(token, info.ID, "")
	if err := c.profileRepo.SetSpotifyConnection(ctx, userID, conn); err != nil {
		return c.callbackURL(url.Values{"error": {"spotify_connect_failed"}})
	}

	log.Info("spotify account connected", "userID", userID)
	return c.callbackURL(url.Values{
		"provider":  {"spotify"},
		"connected": {"true"},
	})
}

// DisconnectSpotify clears the connection. Disconnecting an already
// disconnected profile succeeds trivially.
func (c *ConnectionsController) DisconnectSpotify(ctx context.Context, userID uuid.UUID) error {
	return c.profileRepo.ClearSpotifyConnection(ctx, userID)
}

// VerifyGuildMembership checks the linked Discord account against the
// configured guild and system-assigns the guild badge to members. A check
// failure reports not-a-member rather than an error.
func (c *ConnectionsController) VerifyGuildMembership(
	ctx context.Context,
	user *models.User,
) (bool, error) {
	log := c.log.Function("VerifyGuildMembership")

	profile, err := c.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return false, log.Err("failed to load profile", err, "userID", user.ID)
	}

	if !profile.DiscordConnected || profile.DiscordUserID == nil {
		return false, nil
	}

	isMember := c.discordService.CheckGuildMembership(ctx, *profile.DiscordUserID)
	if !isMember {
		return false, nil
	}

	if c.config.DiscordGuildBadge != "" {
		badge, err := c.badgeRepo.GetByName(ctx, c.config.DiscordGuildBadge)
		if err != nil {
			log.Warn("guild badge not found", "badge", c.config.DiscordGuildBadge)
			return true, nil
		}

		alreadyHeld, err := c.badgeRepo.HasBadge(ctx, user.ID, badge.ID)
		if err != nil {
			log.Er("failed to check guild badge", err, "userID", user.ID)
		}

		if !alreadyHeld {
			// nil assigner marks the badge as system-assigned
			if err := c.badgeRepo.Assign(ctx, user.ID, badge.ID, nil); err != nil {
				log.Er("failed to assign guild badge", err, "userID", user.ID)
			}
		}
	}

	return true, nil
}

func (c *ConnectionsController) callbackURL(params url.Values) string {
	return c.config.SiteBaseURL + "/auth/callback?" + params.Encode()
}
