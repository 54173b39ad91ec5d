package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/codewords/internal/api/handler"
	"github.com/mcoot/codewords/internal/api/middleware"
	"github.com/mcoot/codewords/internal/realtime"
	"github.com/mcoot/codewords/internal/services/auth"
	"github.com/mcoot/codewords/internal/services/directory"
	"github.com/mcoot/codewords/internal/services/history"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	Directory      *directory.Directory
	HistoryService *history.Service
	Realtime       *realtime.Manager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.Directory)
	gameHandler := handler.NewGameHandler(cfg.Directory, cfg.HistoryService, cfg.Realtime, cfg.Logger)
	historyHandler := handler.NewHistoryHandler(cfg.HistoryService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{code}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{code}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{code}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{code}/leave", gameHandler.Leave).Methods(http.MethodPost)
	games.HandleFunc("/{code}/team", gameHandler.AssignTeam).Methods(http.MethodPost)
	games.HandleFunc("/{code}/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{code}/clue", gameHandler.GiveClue).Methods(http.MethodPost)
	games.HandleFunc("/{code}/reveal", gameHandler.Reveal).Methods(http.MethodPost)
	games.HandleFunc("/{code}/end-turn", gameHandler.EndTurn).Methods(http.MethodPost)
	games.HandleFunc("/{code}/reset", gameHandler.Reset).Methods(http.MethodPost)
	games.HandleFunc("/{code}/ws", gameHandler.Stream).Methods(http.MethodGet)

	// History is public; a session is picked up if one is presented
	historyRoutes := api.PathPrefix("/history").Subrouter()
	historyRoutes.Use(optionalAuthMiddleware)
	historyRoutes.HandleFunc("", historyHandler.List).Methods(http.MethodGet)
	historyRoutes.HandleFunc("/{id}", historyHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
