package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Host is the only interface the bridge ever binds.
const Host = "127.0.0.1"

// Config holds all bridge configuration. It is built once at startup and
// treated as read-only afterwards.
type Config struct {
	Server    ServerConfig
	Flatpak   FlatpakConfig
	Confirm   ConfirmConfig
	Timeouts  TimeoutConfig
	Breaker   BreakerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Port is tried first; when taken an ephemeral port is used. 0 means ephemeral.
	Port int `envconfig:"BRIDGE_PORT" default:"8765"`
	// MaxConnections caps concurrently accepted connections. 0 disables the cap.
	MaxConnections int `envconfig:"MAX_CONNECTIONS" default:"64"`
}

// FlatpakConfig selects the package tool and its software channel.
type FlatpakConfig struct {
	Binary    string `envconfig:"FLATPAK_BIN" default:"flatpak"`
	Remote    string `envconfig:"FLATPAK_REMOTE" default:"flathub"`
	RemoteURL string `envconfig:"FLATPAK_REMOTE_URL" default:"https://dl.flathub.org/repo/flathub.flatpakrepo"`
}

// ConfirmConfig holds operator confirmation settings.
type ConfirmConfig struct {
	Mode    string        `envconfig:"CONFIRM_MODE" default:"auto"`
	Title   string        `envconfig:"CONFIRM_TITLE" default:"MujerOS Installer"`
	Timeout time.Duration `envconfig:"CONFIRM_TIMEOUT" default:"0s"`
}

// TimeoutConfig bounds subprocesses. Zero is unbounded.
type TimeoutConfig struct {
	Command  time.Duration `envconfig:"COMMAND_TIMEOUT" default:"0s"`
	Probe    time.Duration `envconfig:"PROBE_TIMEOUT" default:"30s"`
	Shutdown time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// BreakerConfig guards the software channel setup.
type BreakerConfig struct {
	Threshold uint32        `envconfig:"CHANNEL_BREAKER_THRESHOLD" default:"3"`
	Cooldown  time.Duration `envconfig:"CHANNEL_BREAKER_COOLDOWN" default:"1m"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8765,
			MaxConnections: 64,
		},
		Flatpak: FlatpakConfig{
			Binary:    "flatpak",
			Remote:    "flathub",
			RemoteURL: "https://dl.flathub.org/repo/flathub.flatpakrepo",
		},
		Confirm: ConfirmConfig{
			Mode:  "auto",
			Title: "MujerOS Installer",
		},
		Timeouts: TimeoutConfig{
			Probe:    30 * time.Second,
			Shutdown: 5 * time.Second,
		},
		Breaker: BreakerConfig{
			Threshold: 3,
			Cooldown:  time.Minute,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
	}
}

// Validate rejects values the bridge cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid BRIDGE_PORT %d", c.Server.Port)
	}
	if c.Server.MaxConnections < 0 {
		return fmt.Errorf("invalid MAX_CONNECTIONS %d", c.Server.MaxConnections)
	}
	if strings.TrimSpace(c.Flatpak.Binary) == "" {
		return fmt.Errorf("FLATPAK_BIN must not be empty")
	}
	if strings.TrimSpace(c.Flatpak.Remote) == "" {
		return fmt.Errorf("FLATPAK_REMOTE must not be empty")
	}
	switch strings.ToLower(strings.TrimSpace(c.Confirm.Mode)) {
	case "", "auto", "kdialog", "zenity", "console":
	default:
		return fmt.Errorf("invalid CONFIRM_MODE %q", c.Confirm.Mode)
	}
	if c.Confirm.Timeout < 0 || c.Timeouts.Command < 0 || c.Timeouts.Probe < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit needs positive RATE_LIMIT_RPS and RATE_LIMIT_BURST")
	}
	return nil
}

// Addr is the preferred listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", Host, c.Server.Port)
}
