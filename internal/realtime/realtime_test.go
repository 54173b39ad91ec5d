package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codewords/internal/dependencies/mocks"
	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/testutil"
)

const readTimeout = 2 * time.Second

type view struct {
	Viewer string `json:"viewer"`
	Status string `json:"status"`
}

type frame struct {
	Type     model.EventType `json:"type"`
	Code     model.GameCode  `json:"code"`
	PlayerID model.PlayerID  `json:"player_id"`
	Game     *view           `json:"game"`
}

// unrenderable is a viewer whose view cannot be encoded
const unrenderable model.PlayerID = "unrenderable"

func renderForTest(g *model.Game, viewer model.PlayerID) any {
	if viewer == unrenderable {
		return func() {}
	}
	return view{Viewer: string(viewer), Status: string(g.Status)}
}

type RealtimeSuite struct {
	suite.Suite
	manager *Manager
	server  *httptest.Server
	game    *model.Game
}

func TestRealtimeSuite(t *testing.T) {
	suite.Run(t, new(RealtimeSuite))
}

func (s *RealtimeSuite) SetupTest() {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.manager = NewManager(renderForTest, clk, testutil.NopLogger())
	s.game = &model.Game{ID: "game-1", Code: "ABC123", Status: model.GameStatusWaiting}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := s.manager.Hub(s.game.ID, s.game.Code)
		playerID := model.PlayerID(r.URL.Query().Get("player"))
		ServeWS(w, r, hub, playerID, s.game)
	}))
}

func (s *RealtimeSuite) TearDownTest() {
	s.server.Close()
	s.manager.Close()
}

func (s *RealtimeSuite) dial(playerID string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/?player=" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = conn.Close() })
	return conn
}

func (s *RealtimeSuite) read(conn *websocket.Conn) frame {
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	_, data, err := conn.ReadMessage()
	s.Require().NoError(err)

	var f frame
	s.Require().NoError(json.Unmarshal(data, &f))
	return f
}

func (s *RealtimeSuite) waitForClients(n int) {
	hub := s.manager.Hub(s.game.ID, s.game.Code)
	s.Eventually(func() bool {
		return hub.ClientCount() == n
	}, readTimeout, 5*time.Millisecond)
}

func (s *RealtimeSuite) TestClientReceivesCurrentStateOnConnect() {
	conn := s.dial("p1")

	f := s.read(conn)
	s.Equal(model.EventGameUpdated, f.Type)
	s.Equal(model.GameCode("ABC123"), f.Code)
	s.Require().NotNil(f.Game)
	s.Equal("p1", f.Game.Viewer)
	s.Equal("waiting", f.Game.Status)
}

func (s *RealtimeSuite) TestPublishRendersPerViewer() {
	alice := s.dial("alice")
	bob := s.dial("bob")
	s.read(alice)
	s.read(bob)
	s.waitForClients(2)

	started := &model.Game{ID: "game-1", Code: "ABC123", Status: model.GameStatusPlaying}
	s.manager.Publish(model.EventGameStarted, "alice", started)

	fa := s.read(alice)
	s.Equal(model.EventGameStarted, fa.Type)
	s.Equal(model.PlayerID("alice"), fa.PlayerID)
	s.Equal("alice", fa.Game.Viewer)
	s.Equal("playing", fa.Game.Status)

	fb := s.read(bob)
	s.Equal("bob", fb.Game.Viewer)
}

func (s *RealtimeSuite) TestEncodingFailureSkipsOnlyThatViewer() {
	_ = s.dial(string(unrenderable))
	alice := s.dial("alice")
	bob := s.dial("bob")
	s.read(alice)
	s.read(bob)
	s.waitForClients(3)

	started := &model.Game{ID: "game-1", Code: "ABC123", Status: model.GameStatusPlaying}
	s.manager.Publish(model.EventGameStarted, "alice", started)

	s.Equal("alice", s.read(alice).Game.Viewer)
	s.Equal("bob", s.read(bob).Game.Viewer)
}

func (s *RealtimeSuite) TestPublishWithoutHubIsDropped() {
	s.manager.Publish(model.EventGameUpdated, "", &model.Game{ID: "unwatched", Code: "ZZZ999"})
	s.Equal(0, s.manager.HubCount())
}

func (s *RealtimeSuite) TestGameDeletedClosesHub() {
	conn := s.dial("p1")
	s.read(conn)
	s.waitForClients(1)

	s.manager.GameDeleted(s.game.ID, s.game.Code)

	f := s.read(conn)
	s.Equal(model.EventGameClosed, f.Type)
	s.Nil(f.Game)

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	_, _, err := conn.ReadMessage()
	s.True(websocket.IsCloseError(err, websocket.CloseNormalClosure))
	s.Equal(0, s.manager.HubCount())
}

func (s *RealtimeSuite) TestDisconnectUnregisters() {
	conn := s.dial("p1")
	s.read(conn)
	s.waitForClients(1)

	_ = conn.Close()

	s.waitForClients(0)
	s.Equal(1, s.manager.CleanupEmptyHubs())
	s.Equal(0, s.manager.HubCount())
}

func (s *RealtimeSuite) TestHubReusedPerGame() {
	a := s.manager.Hub("game-2", "DEF456")
	b := s.manager.Hub("game-2", "DEF456")
	s.Same(a, b)
}
