package game

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/codewords/internal/dependencies/clock"
	"github.com/mcoot/codewords/internal/model"
)

// BoardGenerator deals the cards for a new or reset game
type BoardGenerator interface {
	Generate(cfg model.BoardConfig) []model.Card
}

// RevealOutcome is the result of a successful reveal
type RevealOutcome struct {
	Card     model.Card
	GameOver bool
	Winner   model.Color // Empty unless GameOver
}

type seat struct {
	color model.Color
	role  model.Role
}

// Machine owns the state of a single game and applies actions to it.
// All methods are safe for concurrent use. A rejected action returns a
// *model.RuleError and leaves the game unchanged.
type Machine struct {
	mu sync.Mutex

	game        model.Game
	seats       map[model.PlayerID]seat
	generator   BoardGenerator
	boardConfig model.BoardConfig
	clock       clock.Clock
}

// NewMachine creates a waiting game with a freshly dealt board
func NewMachine(
	id model.GameID,
	code model.GameCode,
	createdBy model.PlayerID,
	generator BoardGenerator,
	boardConfig model.BoardConfig,
	clock clock.Clock,
) *Machine {
	now := clock.Now()
	m := &Machine{
		game: model.Game{
			ID:          id,
			Code:        code,
			Status:      model.GameStatusWaiting,
			CurrentTurn: model.ColorRed,
			Players:     []model.PlayerID{},
			Board:       generator.Generate(boardConfig),
			CreatedBy:   createdBy,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		seats:       make(map[model.PlayerID]seat),
		generator:   generator,
		boardConfig: boardConfig,
		clock:       clock,
	}
	return m
}

// ID returns the game id
func (m *Machine) ID() model.GameID {
	return m.game.ID
}

// Code returns the join code
func (m *Machine) Code() model.GameCode {
	return m.game.Code
}

// Snapshot returns a deep copy of the current game state
func (m *Machine) Snapshot() model.Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.Clone()
}

// Status returns the current lifecycle phase
func (m *Machine) Status() model.GameStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.Status
}

// Roster

// AddPlayer adds the player to the roster. Adding a present player is a no-op.
func (m *Machine) AddPlayer(playerID model.PlayerID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.game.HasPlayer(playerID) {
		return
	}
	m.game.Players = append(m.game.Players, playerID)
	m.touch()
}

// RemovePlayer removes the player from the roster and vacates any team seat
// they hold. It reports whether the player was present.
func (m *Machine) RemovePlayer(playerID model.PlayerID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, seated := m.seats[playerID]
	if !m.game.HasPlayer(playerID) && !seated {
		return false
	}

	m.game.Players = slices.DeleteFunc(m.game.Players, func(p model.PlayerID) bool {
		return p == playerID
	})
	if seated {
		m.vacate(playerID)
		m.rebuildSeats()
	}
	m.touch()
	return true
}

// HasPlayer returns true if the player is on the roster
func (m *Machine) HasPlayer(playerID model.PlayerID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.HasPlayer(playerID)
}

// Seat returns the team and role the player holds, if any
func (m *Machine) Seat(playerID model.PlayerID) (model.Color, model.Role, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.seats[playerID]
	return st.color, st.role, ok
}

// Teams

// AssignToTeam seats the player on a team, first vacating any seat they hold.
// Claiming spymaster replaces the current holder of that slot; joining as an
// operative requires the team to already have a spymaster. Allowed in any status.
func (m *Machine) AssignToTeam(playerID model.PlayerID, color model.Color, role model.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !color.IsTeam() {
		return model.ErrInvalidTeam
	}

	if current, ok := m.seats[playerID]; ok && current == (seat{color, role}) {
		return nil
	}

	switch role {
	case model.RoleSpymaster:
		m.vacate(playerID)
		team := m.ensureTeam(color)
		team.Spymaster = playerID
	case model.RoleOperative:
		// The spymaster check has to see the team as it will be once the
		// player's current seat is vacated.
		team := m.game.Team(color)
		if !team.HasSpymaster() || team.Spymaster == playerID {
			return model.ErrNoSpymaster
		}
		m.vacate(playerID)
		team.Operatives = append(team.Operatives, playerID)
	default:
		return model.ErrInvalidRole
	}

	m.rebuildSeats()
	m.touch()
	return nil
}

func (m *Machine) ensureTeam(color model.Color) *model.Team {
	if team := m.game.Team(color); team != nil {
		return team
	}
	team := &model.Team{Operatives: []model.PlayerID{}}
	if color == model.ColorRed {
		m.game.RedTeam = team
	} else {
		m.game.BlueTeam = team
	}
	return team
}

// vacate removes the player from whichever team seat they occupy
func (m *Machine) vacate(playerID model.PlayerID) {
	st, ok := m.seats[playerID]
	if !ok {
		return
	}
	team := m.game.Team(st.color)
	if team == nil {
		return
	}
	if st.role == model.RoleSpymaster {
		team.Spymaster = ""
		return
	}
	team.Operatives = slices.DeleteFunc(team.Operatives, func(p model.PlayerID) bool {
		return p == playerID
	})
}

func (m *Machine) rebuildSeats() {
	seats := make(map[model.PlayerID]seat, len(m.seats))
	for _, color := range []model.Color{model.ColorRed, model.ColorBlue} {
		team := m.game.Team(color)
		if team == nil {
			continue
		}
		if team.Spymaster != "" {
			seats[team.Spymaster] = seat{color, model.RoleSpymaster}
		}
		for _, op := range team.Operatives {
			seats[op] = seat{color, model.RoleOperative}
		}
	}
	m.seats = seats
}

// Lifecycle

// Start begins play. With both teams valid the game uses classic rules and
// the team with more cards goes first (red on a tie); with one valid team it
// uses solo rules for that team.
func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game.Status != model.GameStatusWaiting {
		return model.ErrWrongStatus
	}

	redValid := m.game.RedTeam.IsValid()
	blueValid := m.game.BlueTeam.IsValid()

	switch {
	case redValid && blueValid:
		m.game.IsSoloMode = false
		m.game.CurrentTurn = model.ColorRed
		if m.game.CountOnBoard(model.ColorBlue) > m.game.CountOnBoard(model.ColorRed) {
			m.game.CurrentTurn = model.ColorBlue
		}
	case redValid || blueValid:
		solo := model.ColorRed
		if blueValid {
			solo = model.ColorBlue
		}
		m.game.IsSoloMode = true
		m.game.SoloTeam = solo
		m.game.SoloCluesRemaining = model.SoloClueBudget
		m.game.SoloTurnGuessesRemaining = 0
		m.game.CurrentTurn = solo
	default:
		return model.ErrNotEnoughTeams
	}

	m.game.Status = model.GameStatusPlaying
	m.game.StartedAt = m.clock.Now()
	m.touch()
	return nil
}

// Reset returns the game to waiting with a new board. Teams and roster are kept.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.game.Status = model.GameStatusWaiting
	m.game.CurrentTurn = model.ColorRed
	m.game.Board = m.generator.Generate(m.boardConfig)
	m.game.CurrentClue = nil
	m.game.GuessesRemaining = 0
	m.game.CluesGiven = 0
	m.game.IsSoloMode = false
	m.game.SoloTeam = ""
	m.game.SoloCluesRemaining = 0
	m.game.SoloTurnGuessesRemaining = 0
	m.game.Winner = ""
	m.game.StartedAt = time.Time{}
	m.touch()
}

// Turns

// GiveClue records a clue from the spymaster of the team whose turn it is
// and grants the team number+1 guesses. In solo mode it spends one clue.
func (m *Machine) GiveClue(playerID model.PlayerID, word string, number int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game.Status != model.GameStatusPlaying {
		return model.ErrWrongStatus
	}

	st, ok := m.seats[playerID]
	if !ok || st.role != model.RoleSpymaster {
		return model.ErrNotSpymaster
	}
	if st.color != m.game.CurrentTurn {
		return model.ErrNotYourTurn
	}
	if m.game.IsSoloMode && m.game.SoloCluesRemaining <= 0 {
		return model.ErrNoCluesRemaining
	}

	m.game.CurrentClue = &model.Clue{
		Word:      strings.ToUpper(word),
		Number:    number,
		GivenBy:   playerID,
		Timestamp: m.clock.Now(),
	}
	m.game.CluesGiven++

	if m.game.IsSoloMode {
		m.game.SoloCluesRemaining--
		m.game.SoloTurnGuessesRemaining = number + 1
	} else {
		m.game.GuessesRemaining = number + 1
	}

	m.touch()
	return nil
}

// RevealCard flips a card for an operative of the active team and resolves
// the consequences: assassin, then classic win/turn rules, then solo rules.
func (m *Machine) RevealCard(playerID model.PlayerID, cardID string) (RevealOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game.Status != model.GameStatusPlaying {
		return RevealOutcome{}, model.ErrWrongStatus
	}

	card := m.game.CardByID(cardID)
	if card == nil {
		return RevealOutcome{}, model.ErrCardNotFound
	}
	if card.Revealed {
		return RevealOutcome{}, model.ErrCardAlreadyRevealed
	}

	st, ok := m.seats[playerID]
	if !ok || st.role != model.RoleOperative {
		return RevealOutcome{}, model.ErrNotOperative
	}
	active := m.game.ActiveTeam()
	if st.color != active {
		return RevealOutcome{}, model.ErrNotYourTurn
	}

	if m.guessesRemaining() <= 0 {
		return RevealOutcome{}, model.ErrNoGuessesRemaining
	}

	card.Revealed = true
	card.RevealedBy = playerID

	switch {
	case card.Team == model.ColorAssassin:
		if m.game.IsSoloMode {
			m.finish(model.ColorAssassin)
		} else {
			m.finish(m.game.CurrentTurn.Opponent())
		}
	case !m.game.IsSoloMode:
		m.resolveClassic(card.Team)
	default:
		m.resolveSolo(card.Team)
	}

	m.touch()
	return RevealOutcome{
		Card:     *card,
		GameOver: m.game.Status == model.GameStatusFinished,
		Winner:   m.game.Winner,
	}, nil
}

func (m *Machine) resolveClassic(revealed model.Color) {
	m.game.GuessesRemaining--

	turn := m.game.CurrentTurn
	switch {
	case m.game.RemainingCount(turn) == 0:
		m.finish(turn)
	case m.game.RemainingCount(turn.Opponent()) == 0:
		m.finish(turn.Opponent())
	case revealed != turn || m.game.GuessesRemaining <= 0:
		m.endTurn()
	}
}

func (m *Machine) resolveSolo(revealed model.Color) {
	m.game.SoloTurnGuessesRemaining--

	solo := m.game.SoloTeam
	switch revealed {
	case solo:
		if m.game.RemainingCount(solo) == 0 {
			m.finish(solo)
			return
		}
		if m.game.SoloTurnGuessesRemaining <= 0 {
			m.game.CurrentClue = nil
		}
	case model.ColorNeutral:
		m.endTurn()
	default:
		m.endTurn()
		m.game.SoloCluesRemaining = max(m.game.SoloCluesRemaining-1, 0)
	}

	if m.game.SoloCluesRemaining <= 0 {
		m.finish(model.ColorNeutral)
	}
}

// EndTurn closes the current turn. Classic play passes to the other team;
// solo play stays with the solo team, which waits for a new clue. Ending a
// solo turn with the clue budget spent loses the game.
func (m *Machine) EndTurn() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game.Status != model.GameStatusPlaying {
		return model.ErrWrongStatus
	}
	m.closeTurn()
	return nil
}

// PassTurn is EndTurn on behalf of a player, who must be seated on the
// team whose turn it is. It reports whether passing ended the game.
func (m *Machine) PassTurn(playerID model.PlayerID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game.Status != model.GameStatusPlaying {
		return false, model.ErrWrongStatus
	}
	if st, ok := m.seats[playerID]; !ok || st.color != m.game.ActiveTeam() {
		return false, model.ErrNotYourTurn
	}
	m.closeTurn()
	return m.game.Status == model.GameStatusFinished, nil
}

func (m *Machine) closeTurn() {
	m.endTurn()
	if m.game.IsSoloMode && m.game.SoloCluesRemaining <= 0 {
		m.finish(model.ColorNeutral)
	}
	m.touch()
}

func (m *Machine) endTurn() {
	if m.game.IsSoloMode {
		m.game.CurrentTurn = m.game.SoloTeam
		m.game.SoloTurnGuessesRemaining = 0
	} else {
		m.game.CurrentTurn = m.game.CurrentTurn.Opponent()
		m.game.GuessesRemaining = 0
	}
	m.game.CurrentClue = nil
}

func (m *Machine) guessesRemaining() int {
	if m.game.IsSoloMode {
		return m.game.SoloTurnGuessesRemaining
	}
	return m.game.GuessesRemaining
}

func (m *Machine) finish(winner model.Color) {
	m.game.Status = model.GameStatusFinished
	m.game.Winner = winner
	m.game.CurrentClue = nil
	m.game.GuessesRemaining = 0
	m.game.SoloTurnGuessesRemaining = 0
}

func (m *Machine) touch() {
	m.game.UpdatedAt = m.clock.Now()
}
