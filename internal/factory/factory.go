package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/codewords/internal/api/response"
	"github.com/mcoot/codewords/internal/dependencies/clock"
	"github.com/mcoot/codewords/internal/dependencies/random"
	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/realtime"
	"github.com/mcoot/codewords/internal/services/auth"
	"github.com/mcoot/codewords/internal/services/board"
	"github.com/mcoot/codewords/internal/services/directory"
	"github.com/mcoot/codewords/internal/services/history"
	"github.com/mcoot/codewords/internal/services/wordpool"
	"github.com/mcoot/codewords/internal/storage"
	"github.com/mcoot/codewords/internal/storage/memory"
	redisstorage "github.com/mcoot/codewords/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordPool       *wordpool.Service
	BoardGenerator *board.Generator
	Directory      *directory.Directory
	AuthService    *auth.Service
	HistoryService *history.Service
	Realtime       *realtime.Manager
}

// Config holds configuration for the application factory
type Config struct {
	// WordsPath is a word list to load into the pool (optional).
	// If empty, a pool saved in storage is used, falling back to the built-in list.
	WordsPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// BoardConfig is the card deal for new games (optional)
	// If zero value, defaults to model.DefaultBoardConfig()
	BoardConfig model.BoardConfig
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, authCfg, cfg.BoardConfig, logger)

	if err := app.loadWords(ctx, cfg.WordsPath); err != nil {
		return nil, err
	}

	return app, nil
}

// loadWords fills the word pool from a file, or from storage when no file is given
func (a *App) loadWords(ctx context.Context, path string) error {
	if path != "" {
		if err := a.WordPool.LoadFromFile(ctx, path); err != nil {
			return fmt.Errorf("load word list: %w", err)
		}
		return nil
	}

	err := a.WordPool.LoadFromStorage(ctx)
	if err != nil && !errors.Is(err, model.ErrWordPoolNotLoaded) {
		return fmt.Errorf("load stored word pool: %w", err)
	}
	return nil
}

// Close releases the storage backend and disconnects websocket clients
func (a *App) Close() error {
	a.Realtime.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	boardCfg model.BoardConfig,
	logger *slog.Logger,
) *App {
	if boardCfg == (model.BoardConfig{}) {
		boardCfg = model.DefaultBoardConfig()
	}

	// Create services
	wordPool := wordpool.New(store, logger)
	generator := board.NewGenerator(wordPool, rnd)
	hubs := realtime.NewManager(response.Render, clk, logger)
	dir := directory.New(generator, clk, rnd, logger,
		directory.WithBoardConfig(boardCfg),
		directory.WithListener(hubs),
	)
	authService := auth.New(store, clk, authCfg, logger)
	historyService := history.New(store, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		WordPool:       wordPool,
		BoardGenerator: generator,
		Directory:      dir,
		AuthService:    authService,
		HistoryService: historyService,
		Realtime:       hubs,
	}
}
