package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// GuestPlayerTTL expires guest identities; registered players never expire
	GuestPlayerTTL time.Duration
	// ResultTTL expires archived game results
	ResultTTL time.Duration
	// HistoryLimit caps the length of the recent-results index
	HistoryLimit int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		GuestPlayerTTL: 24 * time.Hour,
		ResultTTL:      7 * 24 * time.Hour,
		HistoryLimit:   500,
	}
}
