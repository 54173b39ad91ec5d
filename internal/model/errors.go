package model

import "errors"

// Not-found and resource errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerNotInGame = errors.New("player is not in a game")

	// Directory errors
	ErrGameNotFound  = errors.New("game not found")
	ErrNotAuthorized = errors.New("player is not authorized for this game")
	ErrCodeTaken     = errors.New("game code is held by another player's game")

	// Word pool errors
	ErrWordPoolNotLoaded = errors.New("word pool not loaded")
	ErrWordPoolTooSmall  = errors.New("word pool has fewer words than a board needs")

	// History errors
	ErrResultNotFound = errors.New("game result not found")
)

// Reason is the closed set of rule violations a game can report
type Reason string

const (
	ReasonInvalidTeam         Reason = "invalid_team"
	ReasonInvalidRole         Reason = "invalid_role"
	ReasonNoSpymaster         Reason = "no_spymaster"
	ReasonWrongStatus         Reason = "wrong_status"
	ReasonNotEnoughTeams      Reason = "not_enough_teams"
	ReasonNotYourTurn         Reason = "not_your_turn"
	ReasonNotSpymaster        Reason = "not_spymaster"
	ReasonNotOperative        Reason = "not_operative"
	ReasonNoGuessesRemaining  Reason = "no_guesses_remaining"
	ReasonNoCluesRemaining    Reason = "no_clues_remaining"
	ReasonCardNotFound        Reason = "card_not_found"
	ReasonCardAlreadyRevealed Reason = "card_already_revealed"
)

// RuleError reports an action rejected by the game rules. State is never
// modified when one is returned.
type RuleError struct {
	Reason  Reason
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// Rule violations
var (
	ErrInvalidTeam         = &RuleError{ReasonInvalidTeam, "only red or blue can field a team"}
	ErrInvalidRole         = &RuleError{ReasonInvalidRole, "role must be spymaster or operative"}
	ErrNoSpymaster         = &RuleError{ReasonNoSpymaster, "team needs a spymaster before operatives can join"}
	ErrWrongStatus         = &RuleError{ReasonWrongStatus, "action not allowed in the current game status"}
	ErrNotEnoughTeams      = &RuleError{ReasonNotEnoughTeams, "at least one team needs a spymaster and an operative"}
	ErrNotYourTurn         = &RuleError{ReasonNotYourTurn, "it is not your team's turn"}
	ErrNotSpymaster        = &RuleError{ReasonNotSpymaster, "only the active team's spymaster can give a clue"}
	ErrNotOperative        = &RuleError{ReasonNotOperative, "only the active team's operatives can reveal cards"}
	ErrNoGuessesRemaining  = &RuleError{ReasonNoGuessesRemaining, "no guesses remaining"}
	ErrNoCluesRemaining    = &RuleError{ReasonNoCluesRemaining, "the solo clue budget is spent"}
	ErrCardNotFound        = &RuleError{ReasonCardNotFound, "card not found"}
	ErrCardAlreadyRevealed = &RuleError{ReasonCardAlreadyRevealed, "card has already been revealed"}
)

// ReasonOf returns the rule violation code carried by err, or "" if err is
// not a rule violation
func ReasonOf(err error) Reason {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}
