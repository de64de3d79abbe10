package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	Help    HelpConfig
	Log     LogConfig

	// RateLimitPerMinute caps help interactions per user; zero disables it
	RateLimitPerMinute int
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string
	AppID   string
	GuildID string // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL is optional; without it menus live in memory
	URL string
}

// HelpConfig controls how help menus behave
type HelpConfig struct {
	// CatalogPath is a TOML help catalog; empty uses the built-in one
	CatalogPath string

	// Timeout after which menu controls stop working; zero never expires
	Timeout time.Duration

	Ephemeral bool
	OwnerOnly bool

	// Prefix for message commands such as "!help"; empty disables them
	Prefix string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string
	Development bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	timeout, err := getEnvAsDurationOrDefault("HELP_TIMEOUT", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Discord: DiscordConfig{
			Token:   os.Getenv("DISCORD_TOKEN"),
			AppID:   os.Getenv("DISCORD_APP_ID"),
			GuildID: os.Getenv("DISCORD_GUILD_ID"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Help: HelpConfig{
			CatalogPath: os.Getenv("HELP_CATALOG_PATH"),
			Timeout:     timeout,
			Ephemeral:   getEnvAsBoolOrDefault("HELP_EPHEMERAL", false),
			OwnerOnly:   getEnvAsBoolOrDefault("HELP_OWNER_ONLY", true),
			Prefix:      getEnvOrDefault("HELP_PREFIX", "!"),
		},
		Log: LogConfig{
			Level:       getEnvOrDefault("LOG_LEVEL", "info"),
			Development: getEnvAsBoolOrDefault("LOG_DEVELOPMENT", false),
		},
		RateLimitPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
	}

	// Validate required fields
	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.Discord.AppID == "" {
		return nil, fmt.Errorf("DISCORD_APP_ID is required")
	}
	if cfg.Help.Timeout < 0 {
		return nil, fmt.Errorf("HELP_TIMEOUT must not be negative")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	// a bare "0" is accepted as "never"
	if value == "0" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 15m: %w", key, err)
	}
	return d, nil
}
