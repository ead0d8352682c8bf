package config

import (
	"testing"

	"linkfolio/internal/logger"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() Config {
	return Config{
		ServerPort:  8288,
		SiteBaseURL: "https://linkfolio.example.com",
	}
}

func TestValidateConfig(t *testing.T) {
	log := logger.New("config_test")

	testCases := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:   "minimal valid config",
			mutate: func(c *Config) {},
		},
		{
			name:      "missing port",
			mutate:    func(c *Config) { c.ServerPort = 0 },
			wantError: true,
		},
		{
			name:      "missing site base url",
			mutate:    func(c *Config) { c.SiteBaseURL = "" },
			wantError: true,
		},
		{
			name:      "discord redirect without client id",
			mutate:    func(c *Config) { c.DiscordRedirectURI = "https://x/cb" },
			wantError: true,
		},
		{
			name: "discord fully configured",
			mutate: func(c *Config) {
				c.DiscordClientID = "id"
				c.DiscordRedirectURI = "https://x/cb"
			},
		},
		{
			name:      "guild without bot token",
			mutate:    func(c *Config) { c.DiscordGuildID = "guild" },
			wantError: true,
		},
		{
			name: "guild with bot token",
			mutate: func(c *Config) {
				c.DiscordGuildID = "guild"
				c.DiscordBotToken = "token"
			},
		},
		{
			name:      "spotify client without redirect",
			mutate:    func(c *Config) { c.SpotifyClientID = "id" },
			wantError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := validTestConfig()
			tc.mutate(&config)

			err := validateConfig(config, log)
			if tc.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, Config{Environment: "production"}.IsProduction())
	assert.False(t, Config{Environment: "development"}.IsProduction())
	assert.False(t, Config{}.IsProduction())
}
