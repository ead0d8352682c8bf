package config

import (
	"linkfolio/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	SiteBaseURL          string `mapstructure:"SITE_BASE_URL"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`

	DiscordClientID     string `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret string `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURI  string `mapstructure:"DISCORD_REDIRECT_URI"`
	DiscordGuildID      string `mapstructure:"DISCORD_GUILD_ID"`
	DiscordBotToken     string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordGuildBadge   string `mapstructure:"DISCORD_GUILD_BADGE"`

	SpotifyClientID     string `mapstructure:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `mapstructure:"SPOTIFY_CLIENT_SECRET"`
	SpotifyRedirectURI  string `mapstructure:"SPOTIFY_REDIRECT_URI"`

	StorageBucket         string `mapstructure:"STORAGE_BUCKET"`
	StorageRegion         string `mapstructure:"STORAGE_REGION"`
	StorageEndpoint       string `mapstructure:"STORAGE_ENDPOINT"`
	StoragePublicEndpoint string `mapstructure:"STORAGE_PUBLIC_ENDPOINT"`
	StorageAccessKey      string `mapstructure:"STORAGE_ACCESS_KEY"`
	StorageSecretKey      string `mapstructure:"STORAGE_SECRET_KEY"`
	StorageUseSSL         bool   `mapstructure:"STORAGE_USE_SSL"`

	SchedulerEnabled bool `mapstructure:"SCHEDULER_ENABLED"`
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "SITE_BASE_URL",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
		"CORS_ALLOW_ORIGINS",
		"DISCORD_CLIENT_ID", "DISCORD_CLIENT_SECRET", "DISCORD_REDIRECT_URI",
		"DISCORD_GUILD_ID", "DISCORD_BOT_TOKEN", "DISCORD_GUILD_BADGE",
		"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_REDIRECT_URI",
		"STORAGE_BUCKET", "STORAGE_REGION", "STORAGE_ENDPOINT",
		"STORAGE_PUBLIC_ENDPOINT", "STORAGE_ACCESS_KEY", "STORAGE_SECRET_KEY",
		"STORAGE_USE_SSL",
		"SCHEDULER_ENABLED",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	// Environment variables take precedence; fall back to .env files locally
	if viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST") {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info("Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
	)
	return config, nil
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error("Fatal error: invalid server port", "port", config.ServerPort)
	}

	if config.SiteBaseURL == "" {
		return log.Error("Fatal error: SITE_BASE_URL is required")
	}

	// Discord linking requires the client id when a redirect URI is set
	if config.DiscordRedirectURI != "" && config.DiscordClientID == "" {
		return log.Error(
			"Fatal error: DISCORD_CLIENT_ID required when DISCORD_REDIRECT_URI is set",
		)
	}

	// Guild membership checks need both the guild and a bot token
	if config.DiscordGuildID != "" && config.DiscordBotToken == "" {
		return log.Error(
			"Fatal error: DISCORD_BOT_TOKEN required when DISCORD_GUILD_ID is set",
		)
	}

	if config.SpotifyClientID != "" && config.SpotifyRedirectURI == "" {
		return log.Error(
			"Fatal error: SPOTIFY_REDIRECT_URI required when SPOTIFY_CLIENT_ID is set",
		)
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
