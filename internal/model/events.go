package model

import "time"

// EventType identifies a realtime event pushed to connected clients
type EventType string

const (
	EventGameUpdated  EventType = "game_updated"
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventClueGiven    EventType = "clue_given"
	EventCardRevealed EventType = "card_revealed"
	EventTurnEnded    EventType = "turn_ended"
	EventGameStarted  EventType = "game_started"
	EventGameFinished EventType = "game_finished"
	EventGameReset    EventType = "game_reset"
	EventGameClosed   EventType = "game_closed"
)

// Event describes something that happened to a game. The realtime layer
// decides how the game state that accompanies it is rendered per viewer.
type Event struct {
	Type      EventType
	GameID    GameID
	Code      GameCode
	PlayerID  PlayerID // The player who triggered the event, if any
	Timestamp time.Time
}
