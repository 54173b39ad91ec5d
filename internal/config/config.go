// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds the settings for cmd/server
type Server struct {
	Host string `env:"CODEWORDS_HOST"`
	Port int    `env:"CODEWORDS_PORT" envDefault:"8080"`

	// Storage is "memory" or "redis"
	Storage  string `env:"CODEWORDS_STORAGE" envDefault:"memory"`
	RedisURL string `env:"CODEWORDS_REDIS_URL" envDefault:"redis://localhost:6379"`

	// WordsPath is an optional word list, one word per line
	WordsPath string `env:"CODEWORDS_WORDS_PATH"`

	IdleTimeout     time.Duration `env:"CODEWORDS_IDLE_TIMEOUT" envDefault:"2h"`
	EvictInterval   time.Duration `env:"CODEWORDS_EVICT_INTERVAL" envDefault:"5m"`
	SessionDuration time.Duration `env:"CODEWORDS_SESSION_DURATION" envDefault:"24h"`

	LogLevel string `env:"CODEWORDS_LOG_LEVEL" envDefault:"info"`
}

// Load parses the server settings from the environment
func Load() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express
func (c Server) Validate() error {
	switch c.Storage {
	case "memory", "redis":
	default:
		return fmt.Errorf("CODEWORDS_STORAGE must be memory or redis, got %q", c.Storage)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("CODEWORDS_PORT out of range: %d", c.Port)
	}
	if c.IdleTimeout <= 0 || c.EvictInterval <= 0 {
		return fmt.Errorf("CODEWORDS_IDLE_TIMEOUT and CODEWORDS_EVICT_INTERVAL must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel
func (c Server) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("CODEWORDS_LOG_LEVEL: %w", err)
	}
	return level, nil
}
