package redis

import (
	"fmt"

	"github.com/mcoot/codewords/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "codewords"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// wordsKey returns the Redis key for the word pool list
func wordsKey() string {
	return fmt.Sprintf("%s:words", keyPrefix)
}

// resultKey returns the Redis key for an archived GameResult
func resultKey(id model.GameID) string {
	return fmt.Sprintf("%s:result:%s", keyPrefix, id)
}

// recentResultsKey returns the Redis key for the LIST of recent game ids, newest first
func recentResultsKey() string {
	return fmt.Sprintf("%s:idx:recent_results", keyPrefix)
}
