package model

import "time"

// GameID is the opaque identifier of a game
type GameID string

// GameCode is the short human-shareable code used to join a game
type GameCode string

// GameStatus is the lifecycle phase of a game
type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"  // Teams forming
	GameStatusPlaying  GameStatus = "playing"  // Turns in progress
	GameStatusFinished GameStatus = "finished" // Winner decided
)

// SoloClueBudget is the number of clues a lone team gets in solo mode
const SoloClueBudget = 5

// Clue is a spymaster's hint. It only exists while operatives are guessing.
type Clue struct {
	Word      string
	Number    int
	GivenBy   PlayerID
	Timestamp time.Time
}

// Game is the full state of one game.
//
// Exactly one of classic or solo rules applies, fixed when the game starts.
// Winner is set iff Status is finished; it is a team color, or assassin /
// neutral for the two solo-mode losses (assassin revealed, clues exhausted).
type Game struct {
	ID          GameID
	Code        GameCode
	Status      GameStatus
	CurrentTurn Color

	RedTeam  *Team
	BlueTeam *Team
	Players  []PlayerID // Everyone bound to the game, on a team or not

	Board       []Card
	CurrentClue *Clue

	GuessesRemaining int
	CluesGiven       int

	IsSoloMode               bool
	SoloTeam                 Color
	SoloCluesRemaining       int
	SoloTurnGuessesRemaining int

	Winner Color

	CreatedBy PlayerID
	CreatedAt time.Time
	UpdatedAt time.Time
	StartedAt time.Time
}

// Team returns the team of the given color, or nil if it has not been formed
func (g *Game) Team(color Color) *Team {
	switch color {
	case ColorRed:
		return g.RedTeam
	case ColorBlue:
		return g.BlueTeam
	default:
		return nil
	}
}

// ActiveTeam returns the color whose operatives may currently reveal cards
func (g *Game) ActiveTeam() Color {
	if g.IsSoloMode {
		return g.SoloTeam
	}
	return g.CurrentTurn
}

// CardByID returns the card with the given id, or nil
func (g *Game) CardByID(id string) *Card {
	for i := range g.Board {
		if g.Board[i].ID == id {
			return &g.Board[i]
		}
	}
	return nil
}

// CountOnBoard returns how many cards of the color the board holds
func (g *Game) CountOnBoard(color Color) int {
	count := 0
	for _, c := range g.Board {
		if c.Team == color {
			count++
		}
	}
	return count
}

// RemainingCount returns how many cards of the color are still hidden
func (g *Game) RemainingCount(color Color) int {
	count := 0
	for _, c := range g.Board {
		if c.Team == color && !c.Revealed {
			count++
		}
	}
	return count
}

// RevealedCount returns the number of revealed cards
func (g *Game) RevealedCount() int {
	count := 0
	for _, c := range g.Board {
		if c.Revealed {
			count++
		}
	}
	return count
}

// HasPlayer returns true if the player is on the game's roster
func (g *Game) HasPlayer(playerID PlayerID) bool {
	for _, p := range g.Players {
		if p == playerID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy that shares nothing with the original
func (g *Game) Clone() Game {
	out := *g
	out.RedTeam = g.RedTeam.Clone()
	out.BlueTeam = g.BlueTeam.Clone()
	out.Players = make([]PlayerID, len(g.Players))
	copy(out.Players, g.Players)
	out.Board = make([]Card, len(g.Board))
	copy(out.Board, g.Board)
	if g.CurrentClue != nil {
		clue := *g.CurrentClue
		out.CurrentClue = &clue
	}
	return out
}
