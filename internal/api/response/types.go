package response

import (
	"time"

	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// Me is the response for the current player
type Me struct {
	Player
	CurrentGame string `json:"current_game,omitempty"`
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Card is a board card. Team is empty while the card's color is hidden from the viewer.
type Card struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Position   int    `json:"position"`
	Team       string `json:"team,omitempty"`
	Revealed   bool   `json:"revealed"`
	RevealedBy string `json:"revealed_by,omitempty"`
}

// Team is a team roster
type Team struct {
	Spymaster  string   `json:"spymaster,omitempty"`
	Operatives []string `json:"operatives"`
}

func teamFromModel(t *model.Team) *Team {
	if t == nil {
		return nil
	}
	ops := make([]string, len(t.Operatives))
	for i, op := range t.Operatives {
		ops[i] = string(op)
	}
	return &Team{Spymaster: string(t.Spymaster), Operatives: ops}
}

// Clue is the clue currently in play
type Clue struct {
	Word    string    `json:"word"`
	Number  int       `json:"number"`
	GivenBy string    `json:"given_by"`
	GivenAt time.Time `json:"given_at"`
}

// Solo holds the solo-mode counters
type Solo struct {
	Team             string `json:"team"`
	CluesRemaining   int    `json:"clues_remaining"`
	GuessesRemaining int    `json:"guesses_remaining"`
}

// Seat is the viewer's own place in the game
type Seat struct {
	Team string `json:"team,omitempty"`
	Role string `json:"role,omitempty"`
}

// Game is a game as seen by one player
type Game struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Status           string    `json:"status"`
	CurrentTurn      string    `json:"current_turn,omitempty"`
	RedTeam          *Team     `json:"red_team,omitempty"`
	BlueTeam         *Team     `json:"blue_team,omitempty"`
	Players          []string  `json:"players"`
	Board            []Card    `json:"board"`
	RedRemaining     int       `json:"red_remaining"`
	BlueRemaining    int       `json:"blue_remaining"`
	CurrentClue      *Clue     `json:"current_clue,omitempty"`
	GuessesRemaining int       `json:"guesses_remaining"`
	CluesGiven       int       `json:"clues_given"`
	Solo             *Solo     `json:"solo,omitempty"`
	Winner           string    `json:"winner,omitempty"`
	CreatedBy        string    `json:"created_by"`
	You              Seat      `json:"you"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// GameFor renders g for viewer. Unrevealed card colors are only included for
// spymasters and once the game is finished.
func GameFor(g *model.Game, viewer model.PlayerID) Game {
	you := seatOf(g, viewer)
	showColors := you.Role == string(model.RoleSpymaster) || g.Status == model.GameStatusFinished

	board := make([]Card, len(g.Board))
	for i, c := range g.Board {
		card := Card{
			ID:         c.ID,
			Word:       c.Word,
			Position:   c.Position,
			Revealed:   c.Revealed,
			RevealedBy: string(c.RevealedBy),
		}
		if c.Revealed || showColors {
			card.Team = string(c.Team)
		}
		board[i] = card
	}

	players := make([]string, len(g.Players))
	for i, p := range g.Players {
		players[i] = string(p)
	}

	view := Game{
		ID:               string(g.ID),
		Code:             string(g.Code),
		Status:           string(g.Status),
		RedTeam:          teamFromModel(g.RedTeam),
		BlueTeam:         teamFromModel(g.BlueTeam),
		Players:          players,
		Board:            board,
		RedRemaining:     g.RemainingCount(model.ColorRed),
		BlueRemaining:    g.RemainingCount(model.ColorBlue),
		GuessesRemaining: g.GuessesRemaining,
		CluesGiven:       g.CluesGiven,
		Winner:           string(g.Winner),
		CreatedBy:        string(g.CreatedBy),
		You:              you,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
	if g.Status != model.GameStatusWaiting {
		view.CurrentTurn = string(g.CurrentTurn)
	}
	if g.CurrentClue != nil {
		view.CurrentClue = &Clue{
			Word:    g.CurrentClue.Word,
			Number:  g.CurrentClue.Number,
			GivenBy: string(g.CurrentClue.GivenBy),
			GivenAt: g.CurrentClue.Timestamp,
		}
	}
	if g.IsSoloMode {
		view.Solo = &Solo{
			Team:             string(g.SoloTeam),
			CluesRemaining:   g.SoloCluesRemaining,
			GuessesRemaining: g.SoloTurnGuessesRemaining,
		}
	}
	return view
}

// Render adapts GameFor to the realtime renderer signature
func Render(g *model.Game, viewer model.PlayerID) any {
	return GameFor(g, viewer)
}

func seatOf(g *model.Game, viewer model.PlayerID) Seat {
	for _, color := range []model.Color{model.ColorRed, model.ColorBlue} {
		team := g.Team(color)
		if team == nil {
			continue
		}
		if team.Spymaster == viewer && viewer != "" {
			return Seat{Team: string(color), Role: string(model.RoleSpymaster)}
		}
		if team.HasOperative(viewer) {
			return Seat{Team: string(color), Role: string(model.RoleOperative)}
		}
	}
	return Seat{}
}

// RevealResult is the response for a card reveal
type RevealResult struct {
	Card     Card   `json:"card"`
	GameOver bool   `json:"game_over"`
	Winner   string `json:"winner,omitempty"`
	Game     Game   `json:"game"`
}

// GameResult is an archived finished game
type GameResult struct {
	GameID        string    `json:"game_id"`
	Code          string    `json:"code"`
	Winner        string    `json:"winner"`
	SoloMode      bool      `json:"solo_mode"`
	CluesGiven    int       `json:"clues_given"`
	CardsRevealed int       `json:"cards_revealed"`
	RedPlayers    []string  `json:"red_players"`
	BluePlayers   []string  `json:"blue_players"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// GameResultFromModel converts a model.GameResult
func GameResultFromModel(r *model.GameResult) GameResult {
	return GameResult{
		GameID:        string(r.GameID),
		Code:          string(r.Code),
		Winner:        string(r.Winner),
		SoloMode:      r.SoloMode,
		CluesGiven:    r.CluesGiven,
		CardsRevealed: r.CardsRevealed,
		RedPlayers:    playerIDs(r.RedPlayers),
		BluePlayers:   playerIDs(r.BluePlayers),
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
	}
}

// History is a page of archived games
type History struct {
	Results []GameResult `json:"results"`
}

// HistoryFromModel converts a list of results
func HistoryFromModel(results []*model.GameResult) History {
	out := History{Results: make([]GameResult, len(results))}
	for i, r := range results {
		out.Results[i] = GameResultFromModel(r)
	}
	return out
}

func playerIDs(ids []model.PlayerID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
