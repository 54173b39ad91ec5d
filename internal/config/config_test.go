package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, 2*time.Hour, cfg.IdleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.EvictInterval)
	assert.Equal(t, 24*time.Hour, cfg.SessionDuration)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CODEWORDS_PORT", "9090")
	t.Setenv("CODEWORDS_STORAGE", "redis")
	t.Setenv("CODEWORDS_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("CODEWORDS_WORDS_PATH", "/data/words.txt")
	t.Setenv("CODEWORDS_IDLE_TIMEOUT", "30m")
	t.Setenv("CODEWORDS_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis", cfg.Storage)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, "/data/words.txt", cfg.WordsPath)
	assert.Equal(t, 30*time.Minute, cfg.IdleTimeout)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "CODEWORDS_PORT", "not-a-port"},
		{"port out of range", "CODEWORDS_PORT", "70000"},
		{"unknown storage", "CODEWORDS_STORAGE", "postgres"},
		{"bad duration", "CODEWORDS_IDLE_TIMEOUT", "soon"},
		{"zero interval", "CODEWORDS_EVICT_INTERVAL", "0s"},
		{"bad level", "CODEWORDS_LOG_LEVEL", "chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
