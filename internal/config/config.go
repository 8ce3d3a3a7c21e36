package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Discord   DiscordConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Health    HealthConfig
	Telemetry TelemetryConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL enables the shared rate limit store when set, e.g. redis://localhost:6379/0
	URL string `env:"REDIS_URL"`
}

// Enabled reports whether a Redis server was configured
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// RateLimitConfig bounds how many commands a user can send per window
type RateLimitConfig struct {
	Max    int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"10s"`
}

// HealthConfig holds the health endpoint configuration
type HealthConfig struct {
	Addr string `env:"HEALTH_ADDR" envDefault:":8080"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	Endpoint    string `env:"OTEL_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"battle-bot-discord"`
}

// Exporting reports whether spans should be shipped to a collector
func (c TelemetryConfig) Exporting() bool {
	return c.Enabled && c.Endpoint != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Validate required fields
	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.Discord.AppID == "" {
		return nil, fmt.Errorf("DISCORD_APP_ID is required")
	}
	if cfg.RateLimit.Max <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", cfg.RateLimit.Max)
	}
	if cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimit.Window)
	}

	return cfg, nil
}
