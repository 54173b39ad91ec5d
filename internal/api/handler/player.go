package handler

import (
	"net/http"

	"github.com/mcoot/codewords/internal/api/apierr"
	"github.com/mcoot/codewords/internal/api/middleware"
	"github.com/mcoot/codewords/internal/api/request"
	"github.com/mcoot/codewords/internal/api/response"
	"github.com/mcoot/codewords/internal/services/auth"
	"github.com/mcoot/codewords/internal/services/directory"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	authService *auth.Service
	directory   *directory.Directory
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service, dir *directory.Directory) *PlayerHandler {
	return &PlayerHandler{
		authService: authService,
		directory:   dir,
	}
}

// CreateGuest handles POST /api/v1/players/guest
func (h *PlayerHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	session, err := h.authService.CreateGuest(r.Context(), req.DisplayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	session, err := h.authService.Register(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	me := response.Me{Player: response.PlayerFromModel(player)}
	if m, err := h.directory.GetByPlayer(player.ID); err == nil {
		me.CurrentGame = string(m.Code())
	}
	response.JSON(w, http.StatusOK, me)
}

// Logout handles POST /api/v1/players/logout
func (h *PlayerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSession(r.Context()); session != nil {
		h.authService.Logout(session.Token)
	}
	response.NoContent(w)
}
