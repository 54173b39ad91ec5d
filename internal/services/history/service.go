package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/codewords/internal/dependencies/clock"
	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/storage"
)

const (
	// DefaultLimit is the page size used when no limit is given
	DefaultLimit = 20
	// MaxLimit caps the number of results returned by Recent
	MaxLimit = 100
)

// ErrGameNotFinished is returned when recording a game that has no winner yet
var ErrGameNotFinished = errors.New("game is not finished")

// Service archives finished games
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new history service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Record archives a finished game
func (s *Service) Record(ctx context.Context, g *model.Game) (*model.GameResult, error) {
	if g.Status != model.GameStatusFinished {
		return nil, ErrGameNotFinished
	}

	result := model.ResultFromGame(g, s.clock.Now())
	if err := s.storage.SaveGameResult(ctx, &result); err != nil {
		return nil, fmt.Errorf("save game result: %w", err)
	}

	s.logger.Info("game result recorded",
		slog.String("game_id", string(result.GameID)),
		slog.String("code", string(result.Code)),
		slog.String("winner", string(result.Winner)),
		slog.Bool("solo", result.SoloMode),
		slog.Int("clues_given", result.CluesGiven),
	)
	return &result, nil
}

// Recent returns the most recently finished games, newest first. A
// non-positive limit means DefaultLimit; limits above MaxLimit are capped.
func (s *Service) Recent(ctx context.Context, limit int) ([]*model.GameResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.storage.ListGameResults(ctx, min(limit, MaxLimit))
}

// Get returns the archived result of one game
func (s *Service) Get(ctx context.Context, id model.GameID) (*model.GameResult, error) {
	return s.storage.GetGameResult(ctx, id)
}
