package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/codewords/internal/api/request"
	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/services/auth"
	"github.com/mcoot/codewords/internal/services/history"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes. Rule violations use their reason upper-cased, e.g. NOT_YOUR_TURN.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeNotInGame          = "NOT_IN_GAME"
	CodeResultNotFound     = "RESULT_NOT_FOUND"
	CodeGameNotFinished    = "GAME_NOT_FINISHED"
	CodeGameCodeTaken      = "GAME_CODE_TAKEN"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// ruleStatus maps each rule violation to its HTTP status
var ruleStatus = map[model.Reason]int{
	model.ReasonInvalidTeam:         http.StatusBadRequest,
	model.ReasonInvalidRole:         http.StatusBadRequest,
	model.ReasonNoSpymaster:         http.StatusConflict,
	model.ReasonWrongStatus:         http.StatusConflict,
	model.ReasonNotEnoughTeams:      http.StatusConflict,
	model.ReasonNotYourTurn:         http.StatusForbidden,
	model.ReasonNotSpymaster:        http.StatusForbidden,
	model.ReasonNotOperative:        http.StatusForbidden,
	model.ReasonNoGuessesRemaining:  http.StatusConflict,
	model.ReasonNoCluesRemaining:    http.StatusConflict,
	model.ReasonCardNotFound:        http.StatusNotFound,
	model.ReasonCardAlreadyRevealed: http.StatusConflict,
}

// RuleCode returns the API error code for a rule violation
func RuleCode(reason model.Reason) string {
	return strings.ToUpper(string(reason))
}

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusOf returns the HTTP status err maps to
func StatusOf(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var re *model.RuleError
	if errors.As(err, &re) {
		status, ok := ruleStatus[re.Reason]
		if !ok {
			status = http.StatusBadRequest
		}
		return &httpError{status, APIError{RuleCode(re.Reason), re.Message}}
	}

	switch {
	case errors.Is(err, request.ErrInvalid):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	// Map model errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrPlayerNotInGame):
		return &httpError{http.StatusConflict, APIError{CodeNotInGame, "Not in this game"}}
	case errors.Is(err, model.ErrNotAuthorized):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Not authorized for this game"}}
	case errors.Is(err, model.ErrCodeTaken):
		return &httpError{http.StatusConflict, APIError{CodeGameCodeTaken, "Game code is already in use"}}
	case errors.Is(err, model.ErrResultNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeResultNotFound, "Game result not found"}}
	case errors.Is(err, history.ErrGameNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameNotFinished, "Game has not finished"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
