package model

// BoardSize is the number of cards on every board (5x5)
const BoardSize = 25

// Card is a single word on the board and its hidden affiliation.
// Only Revealed and RevealedBy change after the board is generated.
type Card struct {
	ID         string
	Word       string
	Team       Color
	Revealed   bool
	RevealedBy PlayerID
	Position   int
}

// BoardConfig is the number of cards of each color to deal
type BoardConfig struct {
	RedCount      int
	BlueCount     int
	NeutralCount  int
	AssassinCount int
}

// DefaultBoardConfig returns the standard 9/8/7/1 deal
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		RedCount:      9,
		BlueCount:     8,
		NeutralCount:  7,
		AssassinCount: 1,
	}
}

// Total returns the sum of all configured counts
func (c BoardConfig) Total() int {
	return c.RedCount + c.BlueCount + c.NeutralCount + c.AssassinCount
}
