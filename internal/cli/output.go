package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError writes err to stderr. API errors keep their code.
func (o *Output) PrintError(err error) {
	if o.format != "json" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return
	}

	body := APIError{Message: err.Error()}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		body = *apiErr
	}
	data, _ := json.Marshal(ErrorResponse{Error: body})
	fmt.Fprintln(os.Stderr, string(data))
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Me:
		o.printMe(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case RevealResult:
		o.printRevealResult(v)
	case History:
		o.printHistory(v)
	case GameResult:
		o.printGameResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// Me is the current player and the game they are in
type Me struct {
	Player
	CurrentGame string `json:"current_game,omitempty"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Card response type. Team is empty while hidden.
type Card struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Position   int    `json:"position"`
	Team       string `json:"team,omitempty"`
	Revealed   bool   `json:"revealed"`
	RevealedBy string `json:"revealed_by,omitempty"`
}

// Team response type
type Team struct {
	Spymaster  string   `json:"spymaster,omitempty"`
	Operatives []string `json:"operatives"`
}

// Clue response type
type Clue struct {
	Word    string `json:"word"`
	Number  int    `json:"number"`
	GivenBy string `json:"given_by"`
}

// Solo response type
type Solo struct {
	Team             string `json:"team"`
	CluesRemaining   int    `json:"clues_remaining"`
	GuessesRemaining int    `json:"guesses_remaining"`
}

// Seat response type
type Seat struct {
	Team string `json:"team,omitempty"`
	Role string `json:"role,omitempty"`
}

// Game response type
type Game struct {
	ID               string   `json:"id"`
	Code             string   `json:"code"`
	Status           string   `json:"status"`
	CurrentTurn      string   `json:"current_turn,omitempty"`
	RedTeam          *Team    `json:"red_team,omitempty"`
	BlueTeam         *Team    `json:"blue_team,omitempty"`
	Players          []string `json:"players"`
	Board            []Card   `json:"board"`
	RedRemaining     int      `json:"red_remaining"`
	BlueRemaining    int      `json:"blue_remaining"`
	CurrentClue      *Clue    `json:"current_clue,omitempty"`
	GuessesRemaining int      `json:"guesses_remaining"`
	CluesGiven       int      `json:"clues_given"`
	Solo             *Solo    `json:"solo,omitempty"`
	Winner           string   `json:"winner,omitempty"`
	CreatedBy        string   `json:"created_by"`
	You              Seat     `json:"you"`
}

// CardByWord returns the card showing word, ignoring case
func (g Game) CardByWord(word string) (Card, bool) {
	for _, c := range g.Board {
		if strings.EqualFold(c.Word, word) {
			return c, true
		}
	}
	return Card{}, false
}

// RevealResult response type
type RevealResult struct {
	Card     Card   `json:"card"`
	GameOver bool   `json:"game_over"`
	Winner   string `json:"winner,omitempty"`
	Game     Game   `json:"game"`
}

// GameResult response type
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

// History response type
type History struct {
	Results []GameResult `json:"results"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printMe(m Me) {
	o.printPlayer(m.Player)
	if m.CurrentGame != "" {
		fmt.Printf("Current Game: %s\n", m.CurrentGame)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.Code)
	fmt.Printf("Status: %s\n", g.Status)
	if g.You.Team != "" {
		fmt.Printf("You: %s %s\n", g.You.Team, g.You.Role)
	}

	o.printTeam("Red", g.RedTeam)
	o.printTeam("Blue", g.BlueTeam)
	fmt.Printf("Players: %d\n", len(g.Players))

	if g.Status != "waiting" {
		if g.Solo != nil {
			fmt.Printf("Mode: solo (%s), %d clues left\n", g.Solo.Team, g.Solo.CluesRemaining)
		}
		fmt.Printf("Turn: %s\n", g.CurrentTurn)
		fmt.Printf("Remaining: red %d, blue %d\n", g.RedRemaining, g.BlueRemaining)
	}
	if g.CurrentClue != nil {
		guesses := g.GuessesRemaining
		if g.Solo != nil {
			guesses = g.Solo.GuessesRemaining
		}
		fmt.Printf("Clue: %s %d (%d guesses left)\n", g.CurrentClue.Word, g.CurrentClue.Number, guesses)
	}

	fmt.Println()
	o.printBoard(g.Board)

	if g.Winner != "" {
		fmt.Printf("\nWinner: %s\n", g.Winner)
	}
}

func (o *Output) printTeam(name string, t *Team) {
	if t == nil {
		return
	}
	spymaster := t.Spymaster
	if spymaster == "" {
		spymaster = "-"
	}
	fmt.Printf("%s: spymaster %s, operatives %s\n", name, spymaster, strings.Join(t.Operatives, ", "))
}

// printBoard prints the cards as a 5x5 grid. Revealed cards are upper-case
// team markers; known but hidden colors are shown in brackets.
func (o *Output) printBoard(cards []Card) {
	const width = 5
	cell := 0
	for _, c := range cards {
		cell = max(cell, len(c.Word)+4)
	}

	for i, c := range cards {
		label := c.Word
		switch {
		case c.Revealed:
			label = fmt.Sprintf("%s*%s", teamMarker(c.Team), c.Word)
		case c.Team != "":
			label = fmt.Sprintf("[%s]%s", teamMarker(c.Team), c.Word)
		}
		fmt.Printf("%-*s", cell, label)
		if (i+1)%width == 0 {
			fmt.Println()
		}
	}
}

func teamMarker(team string) string {
	switch team {
	case "red":
		return "R"
	case "blue":
		return "B"
	case "assassin":
		return "X"
	default:
		return "N"
	}
}

func (o *Output) printRevealResult(r RevealResult) {
	fmt.Printf("Revealed %s: %s\n", r.Card.Word, r.Card.Team)
	if r.GameOver {
		fmt.Printf("Game over! Winner: %s\n", r.Winner)
		return
	}
	fmt.Printf("Turn: %s\n", r.Game.CurrentTurn)
}

func (o *Output) printGameResult(r GameResult) {
	mode := "classic"
	if r.SoloMode {
		mode = "solo"
	}
	fmt.Printf("%s  %-6s  %-7s  winner %-8s  clues %d  revealed %d\n",
		r.FinishedAt.Format("2006-01-02 15:04"), r.Code, mode, r.Winner, r.CluesGiven, r.CardsRevealed)
}

func (o *Output) printHistory(h History) {
	if len(h.Results) == 0 {
		fmt.Println("No finished games")
		return
	}
	for _, r := range h.Results {
		o.printGameResult(r)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
