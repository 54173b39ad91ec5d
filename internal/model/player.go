package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is a participant identity, independent of any game
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool
	CreatedAt   time.Time
}

// RegisteredPlayer holds the credentials of a non-guest player.
// Kept apart from Player so password hashes never travel with sessions.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
