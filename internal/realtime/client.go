package realtime

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/codewords/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Send pings at this period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames
	maxMessageSize = 512

	// Buffer size for outgoing messages
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection subscribed to a hub
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	playerID    model.PlayerID
	send        chan []byte
	connectedAt time.Time
}

// ServeWS upgrades the request and streams the hub's updates to it until
// either side goes away. The client first receives the current game state.
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, playerID model.PlayerID, current *model.Game) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Warn("ws upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:         hub,
		conn:        conn,
		playerID:    playerID,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}

	if current != nil {
		frame, err := hub.frame(update{
			event: model.Event{
				Type:      model.EventGameUpdated,
				GameID:    current.ID,
				Code:      current.Code,
				Timestamp: client.connectedAt,
			},
			game: current,
		}, playerID)
		if err == nil {
			client.send <- frame
		}
	}

	if !hub.Register(client) {
		close(client.send)
	}

	go client.writePump()
	client.readPump()
}

// readPump discards inbound data; it exists to process control frames and
// to notice when the peer disconnects
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
