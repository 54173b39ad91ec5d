package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	words             []string
	results           map[model.GameID]*model.GameResult
	resultOrder       []model.GameID // Oldest first
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		results:           make(map[model.GameID]*model.GameResult),
	}
}

var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[player.ID] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *rp
	s.registeredPlayers[rp.PlayerID] = &r
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	r := *rp
	return &r, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	playerID, ok := s.usernameIndex[username]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return s.GetRegisteredPlayer(ctx, playerID)
}

// Word pool operations

func (s *Storage) GetWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.words == nil {
		return nil, model.ErrWordPoolNotLoaded
	}
	result := make([]string, len(s.words))
	copy(result, s.words)
	return result, nil
}

func (s *Storage) SaveWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = make([]string, len(words))
	copy(s.words, words)
	return nil
}

// History operations

func (s *Storage) SaveGameResult(ctx context.Context, result *model.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[result.GameID]; exists {
		s.resultOrder = slices.DeleteFunc(s.resultOrder, func(id model.GameID) bool {
			return id == result.GameID
		})
	}
	s.resultOrder = append(s.resultOrder, result.GameID)
	s.results[result.GameID] = cloneResult(result)
	return nil
}

func (s *Storage) GetGameResult(ctx context.Context, id model.GameID) (*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	if !ok {
		return nil, model.ErrResultNotFound
	}
	return cloneResult(r), nil
}

func (s *Storage) ListGameResults(ctx context.Context, limit int) ([]*model.GameResult, error) {
	if limit <= 0 {
		return []*model.GameResult{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.GameResult, 0, min(limit, len(s.resultOrder)))
	for i := len(s.resultOrder) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneResult(s.results[s.resultOrder[i]]))
	}
	return out, nil
}

func cloneResult(r *model.GameResult) *model.GameResult {
	out := *r
	out.RedPlayers = append([]model.PlayerID(nil), r.RedPlayers...)
	out.BluePlayers = append([]model.PlayerID(nil), r.BluePlayers...)
	return &out
}
