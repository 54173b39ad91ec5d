package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=32"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=32"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateGameRequest is the request body for creating a game. Code is
// optional; one is generated when omitted.
type CreateGameRequest struct {
	Code string `json:"code,omitempty" validate:"omitempty,len=6,alphanum"`
}

// AssignTeamRequest is the request body for taking a seat on a team
type AssignTeamRequest struct {
	Color string `json:"color" validate:"required,oneof=red blue"`
	Role  string `json:"role" validate:"required,oneof=spymaster operative"`
}

// ClueRequest is the request body for giving a clue
type ClueRequest struct {
	Word   string `json:"word" validate:"required,min=1,max=32,alpha"`
	Number int    `json:"number" validate:"min=0,max=9"`
}

// RevealRequest is the request body for revealing a card
type RevealRequest struct {
	CardID string `json:"card_id" validate:"required,max=16"`
}
