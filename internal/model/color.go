package model

// Color is the affiliation of a card, and for red/blue also of a team
type Color string

const (
	ColorRed      Color = "red"
	ColorBlue     Color = "blue"
	ColorNeutral  Color = "neutral"
	ColorAssassin Color = "assassin"
)

// IsTeam returns true for the two colors that can field a team
func (c Color) IsTeam() bool {
	return c == ColorRed || c == ColorBlue
}

// Opponent returns the other team color. Non-team colors return themselves.
func (c Color) Opponent() Color {
	switch c {
	case ColorRed:
		return ColorBlue
	case ColorBlue:
		return ColorRed
	default:
		return c
	}
}

// ParseColor converts a string to a Color, reporting whether it was recognised
func ParseColor(s string) (Color, bool) {
	switch c := Color(s); c {
	case ColorRed, ColorBlue, ColorNeutral, ColorAssassin:
		return c, true
	default:
		return "", false
	}
}

// Role is the part a player takes within a team
type Role string

const (
	RoleSpymaster Role = "spymaster"
	RoleOperative Role = "operative"
)

// ParseRole converts a string to a Role, reporting whether it was recognised
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleSpymaster, RoleOperative:
		return r, true
	default:
		return "", false
	}
}
