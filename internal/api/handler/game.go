package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/codewords/internal/api/apierr"
	"github.com/mcoot/codewords/internal/api/middleware"
	"github.com/mcoot/codewords/internal/api/request"
	"github.com/mcoot/codewords/internal/api/response"
	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/realtime"
	"github.com/mcoot/codewords/internal/services/directory"
	"github.com/mcoot/codewords/internal/services/game"
	"github.com/mcoot/codewords/internal/services/history"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	directory *directory.Directory
	history   *history.Service
	hubs      *realtime.Manager
	logger    *slog.Logger
}

// NewGameHandler creates a new game handler. hubs may be nil, in which case
// nothing is pushed to websocket clients.
func NewGameHandler(
	dir *directory.Directory,
	historyService *history.Service,
	hubs *realtime.Manager,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		directory: dir,
		history:   historyService,
		hubs:      hubs,
		logger:    logger,
	}
}

func codeFromPath(r *http.Request) model.GameCode {
	return model.GameCode(strings.ToUpper(mux.Vars(r)["code"]))
}

// lookup returns the game named in the path
func (h *GameHandler) lookup(r *http.Request) (*game.Machine, error) {
	return h.directory.GetByCode(codeFromPath(r))
}

// member returns the game named in the path, requiring the player to be bound to it
func (h *GameHandler) member(r *http.Request, playerID model.PlayerID) (*game.Machine, error) {
	m, err := h.lookup(r)
	if err != nil {
		return nil, err
	}
	if !m.HasPlayer(playerID) {
		return nil, model.ErrPlayerNotInGame
	}
	return m, nil
}

// publish pushes the game to connected clients and returns the snapshot it sent
func (h *GameHandler) publish(eventType model.EventType, actor model.PlayerID, m *game.Machine) model.Game {
	snapshot := m.Snapshot()
	if h.hubs != nil {
		h.hubs.Publish(eventType, actor, &snapshot)
	}
	return snapshot
}

// record archives a finished game. The archive is best effort; the game
// itself has already finished.
func (h *GameHandler) record(r *http.Request, g *model.Game) {
	if _, err := h.history.Record(r.Context(), g); err != nil {
		h.logger.Error("failed to record game result",
			slog.String("code", string(g.Code)),
			slog.String("error", err.Error()),
		)
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateGameRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	var m *game.Machine
	if req.Code != "" {
		var err error
		m, err = h.directory.Claim(model.GameCode(strings.ToUpper(req.Code)), player.ID)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
	} else {
		m = h.directory.CreateGame(player.ID)
	}

	if err := h.directory.BindPlayer(m.ID(), player.ID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	snapshot := m.Snapshot()
	response.JSON(w, http.StatusCreated, response.GameFor(&snapshot, player.ID))
}

// Get handles GET /api/v1/games/{code}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.lookup(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	snapshot := m.Snapshot()
	response.JSON(w, http.StatusOK, response.GameFor(&snapshot, player.ID))
}

// Join handles POST /api/v1/games/{code}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.lookup(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	// Rejoining the game the player is already bound to only refreshes the view
	if !m.HasPlayer(player.ID) {
		if err := h.directory.BindPlayer(m.ID(), player.ID); err != nil {
			apierr.WriteError(w, err)
			return
		}
		snapshot := h.publish(model.EventPlayerJoined, player.ID, m)
		response.JSON(w, http.StatusOK, response.GameFor(&snapshot, player.ID))
		return
	}

	snapshot := m.Snapshot()
	response.JSON(w, http.StatusOK, response.GameFor(&snapshot, player.ID))
}

// Leave handles POST /api/v1/games/{code}/leave
func (h *GameHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.member(r, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.directory.UnbindPlayer(player.ID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.publish(model.EventPlayerLeft, player.ID, m)
	response.NoContent(w)
}

// AssignTeam handles POST /api/v1/games/{code}/team
func (h *GameHandler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.AssignTeamRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	m, err := h.member(r, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	color, _ := model.ParseColor(req.Color)
	role, _ := model.ParseRole(req.Role)
	if err := m.AssignToTeam(player.ID, color, role); err != nil {
		apierr.WriteError(w, err)
		return
	}

	snapshot := h.publish(model.EventGameUpdated, player.ID, m)
	response.JSON(w, http.StatusOK, response.GameFor(&snapshot, player.ID))
}

// Start handles POST /api/v1/games/{code}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.member(r, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := m.Start(); err != nil {
		apierr.WriteError(w, err)
		return
	}

	snapshot := h.publish(model.EventGameStarted, player.ID, m)
	h.logger.Info("game started",
		slog.String("code", string(snapshot.Code)),
		slog.Bool("solo", snapshot.IsSoloMode),
		slog.String("first_turn", string(snapshot.CurrentTurn)),
	)
	response.JSON(w, http.StatusOK, response.GameFor(&snapshot, player.ID))
}

// GiveClue handles POST /api/v1/games/{code}/clue
func (h *GameHandler) GiveClue(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.ClueRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	m, err := h.member(r, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := m.GiveClue(player.ID, req.Word, req.Number); err != nil {
		apierr.WriteError(w, err)
		return
	}

	snapshot := h.publish(model.EventClueGiven, player.ID, m)
	response.JSON(w, http.StatusOK, response.GameFor(&snapshot, player.ID))
}

// Reveal handles POST /api/v1/games/{code}/reveal
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.RevealRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	m, err := h.member(r, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	outcome, err := m.RevealCard(player.ID, req.CardID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	eventType := model.EventCardRevealed
	if outcome.GameOver {
		eventType = model.EventGameFinished
	}
	snapshot := h.publish(eventType, player.ID, m)

	if outcome.GameOver {
		h.record(r, &snapshot)
	}

	view := response.GameFor(&snapshot, player.ID)
	card := response.Card{
		ID:         outcome.Card.ID,
		Word:       outcome.Card.Word,
		Position:   outcome.Card.Position,
		Team:       string(outcome.Card.Team),
		Revealed:   true,
		RevealedBy: string(outcome.Card.RevealedBy),
	}
	response.JSON(w, http.StatusOK, response.RevealResult{
		Card:     card,
		GameOver: outcome.GameOver,
		Winner:   string(outcome.Winner),
		Game:     view,
	})
}

// EndTurn handles POST /api/v1/games/{code}/end-turn
func (h *GameHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.member(r, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	gameOver, err := m.PassTurn(player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	eventType := model.EventTurnEnded
	if gameOver {
		eventType = model.EventGameFinished
	}
	snapshot := h.publish(eventType, player.ID, m)
	if gameOver {
		h.record(r, &snapshot)
	}
	response.JSON(w, http.StatusOK, response.GameFor(&snapshot, player.ID))
}

// Reset handles POST /api/v1/games/{code}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.member(r, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	m.Reset()

	snapshot := h.publish(model.EventGameReset, player.ID, m)
	response.JSON(w, http.StatusOK, response.GameFor(&snapshot, player.ID))
}

// Delete handles DELETE /api/v1/games/{code}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.lookup(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if m.Snapshot().CreatedBy != player.ID {
		apierr.WriteError(w, apierr.NewForbiddenError("Only the game's creator can delete it"))
		return
	}

	// Connected clients are told by the directory listener
	if !h.directory.DeleteGame(m.ID()) {
		apierr.WriteError(w, model.ErrGameNotFound)
		return
	}

	response.NoContent(w)
}

// Stream handles GET /api/v1/games/{code}/ws
func (h *GameHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if h.hubs == nil {
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}

	m, err := h.lookup(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if !h.directory.IsAuthorized(m.ID(), player.ID) {
		apierr.WriteError(w, model.ErrNotAuthorized)
		return
	}

	hub := h.hubs.Hub(m.ID(), m.Code())
	snapshot := m.Snapshot()
	realtime.ServeWS(w, r, hub, player.ID, &snapshot)
}
