package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/codewords/internal/model"
)

// Renderer turns a game into the view a given player is allowed to see
type Renderer func(g *model.Game, viewer model.PlayerID) any

// Message is the JSON frame pushed to websocket clients
type Message struct {
	Type      model.EventType `json:"type"`
	Code      model.GameCode  `json:"code"`
	PlayerID  model.PlayerID  `json:"player_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Game      any             `json:"game,omitempty"`
}

type update struct {
	event model.Event
	game  *model.Game
}

// Hub fans game updates out to the websocket clients of a single game.
// Each client receives the game rendered for its own player.
type Hub struct {
	gameID  model.GameID
	code    model.GameCode
	clients map[*Client]struct{}
	mu      sync.RWMutex
	render  Renderer
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan update
	done       chan struct{}

	closeOnce sync.Once
	final     *model.Event // Sent to every client on close, if set
}

// NewHub creates a hub for a game. Run must be started for it to deliver.
func NewHub(gameID model.GameID, code model.GameCode, render Renderer, logger *slog.Logger) *Hub {
	return &Hub{
		gameID:     gameID,
		code:       code,
		clients:    make(map[*Client]struct{}),
		render:     render,
		logger:     logger.With(slog.String("game_id", string(gameID)), slog.String("code", string(code))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan update, 256),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop
func (h *Hub) Run() {
	h.logger.Debug("ws hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("ws client unregistered",
					slog.String("player_id", string(client.playerID)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case u := <-h.broadcast:
			h.deliver(u)

		case <-h.done:
			h.mu.Lock()
			if h.final != nil {
				h.deliverLocked(update{event: *h.final})
			}
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("ws hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

func (h *Hub) deliver(u update) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.deliverLocked(u)
}

func (h *Hub) deliverLocked(u update) {
	dropped := 0
	for client := range h.clients {
		frame, err := h.frame(u, client.playerID)
		if err != nil {
			h.logger.Error("ws frame encoding failed",
				slog.String("player_id", string(client.playerID)),
				slog.String("error", err.Error()))
			continue
		}
		select {
		case client.send <- frame:
		default:
			dropped++
			h.logger.Warn("ws message dropped - client buffer full",
				slog.String("player_id", string(client.playerID)))
		}
	}
	if dropped > 0 {
		h.logger.Warn("ws broadcast partial failure", slog.Int("dropped", dropped))
	}
}

// frame encodes the update as seen by viewer
func (h *Hub) frame(u update, viewer model.PlayerID) ([]byte, error) {
	msg := Message{
		Type:      u.event.Type,
		Code:      h.code,
		PlayerID:  u.event.PlayerID,
		Timestamp: u.event.Timestamp,
	}
	if u.game != nil && h.render != nil {
		msg.Game = h.render(u.game, viewer)
	}
	return json.Marshal(msg)
}

// Register adds a client. It returns false if the hub has already stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues an event and the game state that goes with it. The game is
// rendered separately for every client.
func (h *Hub) Publish(event model.Event, g *model.Game) {
	select {
	case h.broadcast <- update{event: event, game: g}:
	case <-h.done:
	default:
		h.logger.Warn("ws broadcast dropped - hub buffer full")
	}
}

// Close stops the hub and disconnects every client
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// CloseWith sends event to every client and then stops the hub
func (h *Hub) CloseWith(event model.Event) {
	h.closeOnce.Do(func() {
		h.final = &event
		close(h.done)
	})
}

// Done is closed once the hub has been told to stop
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
