package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all termbridge configuration.
type Config struct {
	Session SessionConfig
	IO      IOConfig
	Logging LogConfig
}

// SessionConfig bounds the session table and its process controller.
type SessionConfig struct {
	MaxSessions int           `envconfig:"TERMBRIDGE_MAX_SESSIONS" default:"64"`
	Shell       string        `envconfig:"TERMBRIDGE_SHELL" default:"/bin/sh"`
	GracePeriod time.Duration `envconfig:"TERMBRIDGE_GRACE_PERIOD" default:"100ms"`
	KillWait    time.Duration `envconfig:"TERMBRIDGE_KILL_WAIT" default:"100ms"`
}

// IOConfig tunes the harness read loop.
type IOConfig struct {
	ReadBuffer   int           `envconfig:"TERMBRIDGE_READ_BUFFER" default:"4096"`
	PollInterval time.Duration `envconfig:"TERMBRIDGE_POLL_INTERVAL" default:"50ms"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"TERMBRIDGE_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"TERMBRIDGE_LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns
// default.
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
		Session: SessionConfig{
			MaxSessions: 64,
			Shell:       "/bin/sh",
			GracePeriod: 100 * time.Millisecond,
			KillWait:    100 * time.Millisecond,
		},
		IO: IOConfig{
			ReadBuffer:   4096,
			PollInterval: 50 * time.Millisecond,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
