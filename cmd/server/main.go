package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/codewords/internal/api"
	"github.com/mcoot/codewords/internal/config"
	"github.com/mcoot/codewords/internal/factory"
	"github.com/mcoot/codewords/internal/services/auth"
	redisstorage "github.com/mcoot/codewords/internal/storage/redis"
)

const (
	sessionCleanupInterval = 10 * time.Minute
	hubCleanupInterval     = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	level, _ := cfg.Level()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Build factory config from environment
	factoryCfg := factory.Config{
		WordsPath:   cfg.WordsPath,
		AuthConfig:  auth.Config{SessionDuration: cfg.SessionDuration},
		Logger:      logger,
		StorageType: cfg.Storage,
	}
	if cfg.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close error", slog.String("error", err.Error()))
		}
	}()
	logger.Info("word pool ready", slog.Int("words", app.WordPool.Count()))

	// Background maintenance
	go app.Directory.RunEviction(ctx, cfg.EvictInterval, cfg.IdleTimeout)
	go app.AuthService.RunCleanup(ctx, sessionCleanupInterval)
	go runHubCleanup(ctx, app, logger)

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		Directory:      app.Directory,
		HistoryService: app.HistoryService,
		Realtime:       app.Realtime,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(mux, serverConfig, logger)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// runHubCleanup stops websocket hubs nobody is listening to
func runHubCleanup(ctx context.Context, app *factory.App, logger *slog.Logger) {
	ticker := time.NewTicker(hubCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.Realtime.CleanupEmptyHubs(); n > 0 {
				logger.Debug("idle ws hubs stopped", slog.Int("count", n))
			}
		}
	}
}
