package storage

import (
	"context"

	"github.com/mcoot/codewords/internal/model"
)

// Storage persists the data that outlives a single game: player identities,
// the word pool and the archive of finished games. Live games are held in
// memory by the session directory and never pass through here.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Word pool operations
	GetWords(ctx context.Context) ([]string, error)
	SaveWords(ctx context.Context, words []string) error

	// History operations
	SaveGameResult(ctx context.Context, result *model.GameResult) error
	GetGameResult(ctx context.Context, id model.GameID) (*model.GameResult, error)
	// ListGameResults returns at most limit results, most recently finished first
	ListGameResults(ctx context.Context, limit int) ([]*model.GameResult, error)
}
