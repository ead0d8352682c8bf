package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"linkfolio/config"
	"linkfolio/internal/logger"
	"linkfolio/internal/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/spotify"
)

const spotifyAPIBaseURL = "https://api.spotify.com/v1"

// SpotifyStateTTL bounds the connect flow; the state cookie expires with it.
const SpotifyStateTTL = 10 * time.Minute

type SpotifyService struct {
	oauthConfig *oauth2.Config
	log         logger.Logger
}

type SpotifyUserInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

func NewSpotifyService(cfg config.Config) *SpotifyService {
	return &SpotifyService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
			RedirectURL:  cfg.SpotifyRedirectURI,
			Scopes:       []string{"user-read-private", "user-read-email", "playlist-read-private"},
			Endpoint:     spotify.Endpoint,
		},
		log: logger.New("SpotifyService"),
	}
}

func (s *SpotifyService) IsConfigured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.RedirectURL != ""
}

// GetAuthorizationURL builds the Spotify authorize URL carrying the CSRF state.
func (s *SpotifyService) GetAuthorizationURL(state string) (string, error) {
	log := s.log.Function("GetAuthorizationURL")

	if !s.IsConfigured() {
		return "", log.Error("spotify oauth is not configured")
	}

	return s.oauthConfig.AuthCodeURL(state), nil
}

func (s *SpotifyService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	log := s.log.Function("ExchangeCode")

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, log.Err("failed to exchange authorization code", err)
	}

	return token, nil
}

// GetUserInfo fetches the connected account's profile from the Spotify API.
func (s *SpotifyService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*SpotifyUserInfo, error) {
	log := s.log.Function("GetUserInfo")

	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(spotifyAPIBaseURL + "/me")
	if err != nil {
		return nil, log.Err("failed to fetch spotify profile", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, log.Error("spotify profile request failed", "status", resp.StatusCode)
	}

	var info SpotifyUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, log.Err("failed to decode spotify profile", err)
	}

	return &info, nil
}

// Refresh exchanges a refresh token for a fresh access token.
func (s *SpotifyService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	log := s.log.Function("Refresh")

	source := s.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, log.Err("failed to refresh spotify token", err)
	}

	return token, nil
}

// ToConnection maps an oauth2 token and profile onto the profile field set.
// Spotify keeps the original refresh token when the response omits one.
func ToConnection(token *oauth2.Token, username, previousRefreshToken string) models.SpotifyConnection {
	refreshToken := token.RefreshToken
	if refreshToken == "" {
		refreshToken = previousRefreshToken
	}

	return models.SpotifyConnection{
		Username:     username,
		AccessToken:  token.AccessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    token.Expiry,
	}
}
