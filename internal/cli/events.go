package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <code>",
		Short: "Stream live updates from a game",
		Long: `Connect to the game's websocket and print updates as they happen.

Events include:
  - game_updated: Current state, sent on connect and on seat changes
  - player_joined / player_left: Roster changed
  - game_started: Teams are locked in and play begins
  - clue_given: A spymaster gave a clue
  - card_revealed: An operative revealed a card
  - turn_ended: The turn passed
  - game_finished: A winner was decided
  - game_reset: A new board was dealt
  - game_closed: The game was deleted or expired

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(cmd.Context(), strings.ToUpper(args[0]), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// Event is one frame received from the game websocket
type Event struct {
	Type      string    `json:"type"`
	Code      string    `json:"code"`
	PlayerID  string    `json:"player_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Game      *Game     `json:"game,omitempty"`
}

func streamEvents(ctx context.Context, code string, jsonOutput bool) error {
	wsURL, err := client.WebsocketURL(gamePath(code, "ws"))
	if err != nil {
		return err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Unblock the read loop on interrupt
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	if !jsonOutput {
		fmt.Printf("Connected to game %s\n", code)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if !jsonOutput {
					fmt.Println("Disconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}

		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			return errors.New("malformed event from server")
		}
		printEvent(evt, data, jsonOutput)
	}
}

func printEvent(evt Event, raw []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(string(raw))
		return
	}

	timestamp := evt.Timestamp.Local().Format("2006-01-02 15:04:05")
	detail := ""
	if g := evt.Game; g != nil {
		detail = fmt.Sprintf("status=%s turn=%s red=%d blue=%d", g.Status, g.CurrentTurn, g.RedRemaining, g.BlueRemaining)
		if g.CurrentClue != nil {
			detail += fmt.Sprintf(" clue=%s/%d", g.CurrentClue.Word, g.CurrentClue.Number)
		}
		if g.Winner != "" {
			detail += " winner=" + g.Winner
		}
	}
	if evt.PlayerID != "" {
		detail = fmt.Sprintf("by %s %s", evt.PlayerID, detail)
	}
	fmt.Printf("[%s] %s: %s\n", timestamp, evt.Type, detail)
}
