package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"linkfolio/config"
	"linkfolio/internal/logger"

	"golang.org/x/oauth2"
)

const discordAPIBaseURL = "https://discord.com/api/v10"

// discordEndpoint is Discord's OAuth2 endpoint pair; x/oauth2 ships no
// provider package for Discord.
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

type DiscordService struct {
	oauthConfig *oauth2.Config
	guildID     string
	botToken    string
	client      *http.Client
	log         logger.Logger
}

type DiscordUserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func NewDiscordService(cfg config.Config) *DiscordService {
	return &DiscordService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURI,
			Scopes:       []string{"identify", "guilds", "guilds.members.read"},
			Endpoint:     discordEndpoint,
		},
		guildID:  cfg.DiscordGuildID,
		botToken: cfg.DiscordBotToken,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      logger.New("DiscordService"),
	}
}

func (s *DiscordService) IsConfigured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.RedirectURL != ""
}

// GetAuthorizationURL builds the Discord authorize URL for the linking flow.
func (s *DiscordService) GetAuthorizationURL(state string) (string, error) {
	log := s.log.Function("GetAuthorizationURL")

	if !s.IsConfigured() {
		return "", log.Error("discord oauth is not configured")
	}

	return s.oauthConfig.AuthCodeURL(state), nil
}

func (s *DiscordService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	log := s.log.Function("ExchangeCode")

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, log.Err("failed to exchange authorization code", err)
	}

	return token, nil
}

// GetUserInfo fetches the authenticated Discord user for the given token.
func (s *DiscordService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*DiscordUserInfo, error) {
	log := s.log.Function("GetUserInfo")

	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(discordAPIBaseURL + "/users/@me")
	if err != nil {
		return nil, log.Err("failed to fetch discord user", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, log.Error("discord user request failed", "status", resp.StatusCode)
	}

	var info DiscordUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, log.Err("failed to decode discord user", err)
	}

	return &info, nil
}

// CheckGuildMembership looks up the Discord user in the configured guild via
// the bot-token member endpoint. One call, no retry; any failure (transport,
// non-200, missing config) reports not-a-member.
func (s *DiscordService) CheckGuildMembership(ctx context.Context, discordUserID string) bool {
	log := s.log.Function("CheckGuildMembership")

	if s.guildID == "" || s.botToken == "" || discordUserID == "" {
		log.Info("guild membership check skipped, not configured")
		return false
	}

	url := fmt.Sprintf("%s/guilds/%s/members/%s", discordAPIBaseURL, s.guildID, discordUserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Er("failed to build member lookup request", err)
		return false
	}
	req.Header.Set("Authorization", "Bot "+s.botToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Er("guild member lookup failed", err, "discordUserID", discordUserID)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Info("user is not a guild member",
			"discordUserID", discordUserID,
			"status", resp.StatusCode,
		)
		return false
	}

	return true
}
