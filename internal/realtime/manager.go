package realtime

import (
	"log/slog"
	"sync"

	"github.com/mcoot/codewords/internal/dependencies/clock"
	"github.com/mcoot/codewords/internal/model"
)

// Manager owns one hub per live game
type Manager struct {
	hubs   map[model.GameID]*Hub
	mu     sync.RWMutex
	render Renderer
	clock  clock.Clock
	logger *slog.Logger
}

// NewManager creates a hub manager that renders games with render
func NewManager(render Renderer, clock clock.Clock, logger *slog.Logger) *Manager {
	return &Manager{
		hubs:   make(map[model.GameID]*Hub),
		render: render,
		clock:  clock,
		logger: logger.With(slog.String("component", "realtime")),
	}
}

// Hub returns the hub for a game, starting one if needed
func (m *Manager) Hub(id model.GameID, code model.GameCode) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[id]; ok {
		return hub
	}

	hub := NewHub(id, code, m.render, m.logger)
	m.hubs[id] = hub
	go hub.Run()
	return hub
}

// Publish pushes an event to the game's clients. Games nobody is watching
// have no hub and the event is dropped.
func (m *Manager) Publish(eventType model.EventType, actor model.PlayerID, g *model.Game) {
	m.mu.RLock()
	hub, ok := m.hubs[g.ID]
	m.mu.RUnlock()
	if !ok {
		return
	}

	hub.Publish(model.Event{
		Type:      eventType,
		GameID:    g.ID,
		Code:      g.Code,
		PlayerID:  actor,
		Timestamp: m.clock.Now(),
	}, g)
}

// GameDeleted closes the game's hub after telling its clients
func (m *Manager) GameDeleted(id model.GameID, code model.GameCode) {
	m.mu.Lock()
	hub, ok := m.hubs[id]
	delete(m.hubs, id)
	m.mu.Unlock()
	if !ok {
		return
	}

	hub.CloseWith(model.Event{
		Type:      model.EventGameClosed,
		GameID:    id,
		Code:      code,
		Timestamp: m.clock.Now(),
	})
	m.logger.Info("ws hub removed", slog.String("code", string(code)))
}

// CleanupEmptyHubs stops hubs with no clients and returns how many were stopped
func (m *Manager) CleanupEmptyHubs() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("ws empty hubs cleaned up", slog.Int("removed", removed))
	}
	return removed
}

// HubCount returns the number of running hubs
func (m *Manager) HubCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hubs)
}

// Close stops every hub
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
