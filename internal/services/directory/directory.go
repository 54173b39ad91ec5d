package directory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/codewords/internal/dependencies/clock"
	"github.com/mcoot/codewords/internal/dependencies/random"
	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/services/game"
)

const (
	// CodeLength is the length of generated game codes
	CodeLength = 6
	// CodeAlphabet is the characters used in game codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Listener is notified after a game has been removed from the directory
type Listener interface {
	GameDeleted(id model.GameID, code model.GameCode)
}

// Option configures a Directory
type Option func(*Directory)

// WithListener registers a deletion listener
func WithListener(l Listener) Option {
	return func(d *Directory) {
		d.listeners = append(d.listeners, l)
	}
}

// WithBoardConfig sets the card deal used for new games
func WithBoardConfig(cfg model.BoardConfig) Option {
	return func(d *Directory) {
		d.boardConfig = cfg
	}
}

type entry struct {
	machine      *game.Machine
	lastActivity time.Time
}

type set[K comparable] map[K]struct{}

// Directory is the registry of live games. It indexes games by id and code,
// tracks which game each player is bound to, and which games each player is
// authorized to (re)join. Authorization outlives bindings so a player who
// drops can come back.
//
// Lock order is directory then machine; machines never call back in.
type Directory struct {
	mu sync.RWMutex

	games      map[model.GameID]*entry
	codes      map[model.GameCode]model.GameID
	players    map[model.PlayerID]model.GameID
	gameAuth   map[model.GameID]set[model.PlayerID]
	playerAuth map[model.PlayerID]set[model.GameID]

	generator   game.BoardGenerator
	boardConfig model.BoardConfig
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
	listeners   []Listener
}

// New creates an empty directory
func New(
	generator game.BoardGenerator,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	opts ...Option,
) *Directory {
	d := &Directory{
		games:       make(map[model.GameID]*entry),
		codes:       make(map[model.GameCode]model.GameID),
		players:     make(map[model.PlayerID]model.GameID),
		gameAuth:    make(map[model.GameID]set[model.PlayerID]),
		playerAuth:  make(map[model.PlayerID]set[model.GameID]),
		generator:   generator,
		boardConfig: model.DefaultBoardConfig(),
		clock:       clock,
		random:      random,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddListener registers a deletion listener after construction
func (d *Directory) AddListener(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

// GenerateCode returns a code not currently in use
func (d *Directory) GenerateCode() model.GameCode {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.generateCodeLocked()
}

func (d *Directory) generateCodeLocked() model.GameCode {
	for {
		code := model.GameCode(d.random.String(CodeLength, CodeAlphabet))
		if _, taken := d.codes[code]; !taken {
			return code
		}
	}
}

// Create registers a fresh game under code. Any game already holding the
// code is deleted first. The creator is authorized for the new game.
func (d *Directory) Create(code model.GameCode, creatorID model.PlayerID) *game.Machine {
	d.mu.Lock()
	var evicted []deleted
	if oldID, ok := d.codes[code]; ok {
		if del, ok := d.deleteLocked(oldID); ok {
			evicted = append(evicted, del)
		}
	}
	m := d.createLocked(code, creatorID)
	d.mu.Unlock()

	d.notify(evicted)
	return m
}

// Claim is Create for a caller-chosen code. Only the player who created the
// game currently holding code may replace it; anyone else gets ErrCodeTaken.
func (d *Directory) Claim(code model.GameCode, creatorID model.PlayerID) (*game.Machine, error) {
	d.mu.Lock()
	var evicted []deleted
	if oldID, ok := d.codes[code]; ok {
		if d.games[oldID].machine.Snapshot().CreatedBy != creatorID {
			d.mu.Unlock()
			return nil, model.ErrCodeTaken
		}
		if del, ok := d.deleteLocked(oldID); ok {
			evicted = append(evicted, del)
		}
	}
	m := d.createLocked(code, creatorID)
	d.mu.Unlock()

	d.notify(evicted)
	return m, nil
}

// CreateGame registers a fresh game under a newly generated code
func (d *Directory) CreateGame(creatorID model.PlayerID) *game.Machine {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.createLocked(d.generateCodeLocked(), creatorID)
}

func (d *Directory) createLocked(code model.GameCode, creatorID model.PlayerID) *game.Machine {
	id := model.GameID(uuid.NewString())
	m := game.NewMachine(id, code, creatorID, d.generator, d.boardConfig, d.clock)

	d.games[id] = &entry{machine: m, lastActivity: d.clock.Now()}
	d.codes[code] = id
	if creatorID != "" {
		d.authorizeLocked(id, creatorID)
	}

	d.logger.Info("game created",
		slog.String("game_id", string(id)),
		slog.String("code", string(code)),
		slog.String("created_by", string(creatorID)),
	)
	return m
}

// Lookups

// GetByCode returns the game with the given code and marks it active
func (d *Directory) GetByCode(code model.GameCode) (*game.Machine, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.codes[code]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return d.touchLocked(id)
}

// GetByID returns the game with the given id and marks it active
func (d *Directory) GetByID(id model.GameID) (*game.Machine, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.touchLocked(id)
}

func (d *Directory) touchLocked(id model.GameID) (*game.Machine, error) {
	e, ok := d.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	e.lastActivity = d.clock.Now()
	return e.machine, nil
}

// GetByPlayer returns the game the player is bound to. It does not count as activity.
func (d *Directory) GetByPlayer(playerID model.PlayerID) (*game.Machine, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.players[playerID]
	if !ok {
		return nil, model.ErrPlayerNotInGame
	}
	e, ok := d.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return e.machine, nil
}

// Len returns the number of live games
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.games)
}

// Bindings

// BindPlayer puts the player in the game's roster, unbinding them from any
// other game first, and authorizes them for it. Rebinding to the same game
// is a no-op.
func (d *Directory) BindPlayer(gameID model.GameID, playerID model.PlayerID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.games[gameID]
	if !ok {
		return model.ErrGameNotFound
	}

	if current, bound := d.players[playerID]; bound && current != gameID {
		if prev, ok := d.games[current]; ok {
			prev.machine.RemovePlayer(playerID)
		}
		d.logger.Info("player moved between games",
			slog.String("player_id", string(playerID)),
			slog.String("from_game_id", string(current)),
			slog.String("to_game_id", string(gameID)),
		)
	}

	e.machine.AddPlayer(playerID)
	e.lastActivity = d.clock.Now()
	d.players[playerID] = gameID
	d.authorizeLocked(gameID, playerID)
	return nil
}

// UnbindPlayer removes the player from their game. Authorization is kept.
func (d *Directory) UnbindPlayer(playerID model.PlayerID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, ok := d.players[playerID]
	if !ok {
		return model.ErrPlayerNotInGame
	}
	delete(d.players, playerID)
	if e, ok := d.games[id]; ok {
		e.machine.RemovePlayer(playerID)
	}
	return nil
}

// Authorization

func (d *Directory) authorizeLocked(gameID model.GameID, playerID model.PlayerID) {
	if d.gameAuth[gameID] == nil {
		d.gameAuth[gameID] = make(set[model.PlayerID])
	}
	d.gameAuth[gameID][playerID] = struct{}{}

	if d.playerAuth[playerID] == nil {
		d.playerAuth[playerID] = make(set[model.GameID])
	}
	d.playerAuth[playerID][gameID] = struct{}{}
}

// IsAuthorized returns true if the player may (re)join the game
func (d *Directory) IsAuthorized(gameID model.GameID, playerID model.PlayerID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.gameAuth[gameID][playerID]
	return ok
}

// AuthorizedGames returns the ids of every live game the player may rejoin
func (d *Directory) AuthorizedGames(playerID model.PlayerID) []model.GameID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]model.GameID, 0, len(d.playerAuth[playerID]))
	for id := range d.playerAuth[playerID] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Deletion

type deleted struct {
	id   model.GameID
	code model.GameCode
}

// DeleteGame removes the game and every binding and authorization that
// refers to it. It returns false if the game was already gone.
func (d *Directory) DeleteGame(gameID model.GameID) bool {
	d.mu.Lock()
	del, ok := d.deleteLocked(gameID)
	d.mu.Unlock()

	if ok {
		d.notify([]deleted{del})
	}
	return ok
}

// deleteLocked is the only place the indexes are cleaned up together; a new
// index has to be cleared here as well.
func (d *Directory) deleteLocked(gameID model.GameID) (deleted, bool) {
	e, ok := d.games[gameID]
	if !ok {
		return deleted{}, false
	}
	code := e.machine.Code()

	for playerID, boundTo := range d.players {
		if boundTo == gameID {
			delete(d.players, playerID)
		}
	}

	if d.codes[code] == gameID {
		delete(d.codes, code)
	}

	for playerID := range d.gameAuth[gameID] {
		games := d.playerAuth[playerID]
		delete(games, gameID)
		if len(games) == 0 {
			delete(d.playerAuth, playerID)
		}
	}
	delete(d.gameAuth, gameID)

	delete(d.games, gameID)

	d.logger.Info("game deleted",
		slog.String("game_id", string(gameID)),
		slog.String("code", string(code)),
	)
	return deleted{id: gameID, code: code}, true
}

func (d *Directory) notify(games []deleted) {
	if len(games) == 0 {
		return
	}
	d.mu.RLock()
	listeners := slices.Clone(d.listeners)
	d.mu.RUnlock()

	for _, g := range games {
		for _, l := range listeners {
			l.GameDeleted(g.id, g.code)
		}
	}
}

// EvictIdle deletes every game with no activity for longer than maxIdle and
// returns how many were deleted
func (d *Directory) EvictIdle(maxIdle time.Duration) int {
	d.mu.Lock()
	var evicted []deleted
	for id, e := range d.games {
		if clock.Since(d.clock, e.lastActivity) > maxIdle {
			if del, ok := d.deleteLocked(id); ok {
				evicted = append(evicted, del)
			}
		}
	}
	d.mu.Unlock()

	d.notify(evicted)
	if len(evicted) > 0 {
		d.logger.Info("evicted idle games",
			slog.Int("count", len(evicted)),
			slog.Duration("max_idle", maxIdle),
		)
	}
	return len(evicted)
}

// RunEviction calls EvictIdle every interval until ctx is done
func (d *Directory) RunEviction(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.EvictIdle(maxIdle)
		}
	}
}
