package model

import "time"

// GameResult is the archived summary of a finished game
type GameResult struct {
	GameID        GameID
	Code          GameCode
	Winner        Color
	SoloMode      bool
	CluesGiven    int
	CardsRevealed int
	RedPlayers    []PlayerID
	BluePlayers   []PlayerID
	StartedAt     time.Time
	FinishedAt    time.Time
}

// ResultFromGame builds the archive record for a finished game
func ResultFromGame(g *Game, finishedAt time.Time) GameResult {
	return GameResult{
		GameID:        g.ID,
		Code:          g.Code,
		Winner:        g.Winner,
		SoloMode:      g.IsSoloMode,
		CluesGiven:    g.CluesGiven,
		CardsRevealed: g.RevealedCount(),
		RedPlayers:    g.RedTeam.Members(),
		BluePlayers:   g.BlueTeam.Members(),
		StartedAt:     g.StartedAt,
		FinishedAt:    finishedAt,
	}
}
