package api

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/thelaith/satire-empire/internal/constants"
	"github.com/thelaith/satire-empire/internal/engine"
	"github.com/thelaith/satire-empire/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateMatchPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Faction    string `json:"faction"`
	Name       string `json:"name"`
	Private    bool   `json:"private"`
}

// CreateMatch creates a new match with the caller as host and returns IDs
// and the join code.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameRequired})
		return
	}
	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMatchNameExceeds})
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = uuid.NewString()
	}

	joinCode := generateJoinCode()

	m, err := h.manager.CreateMatch(req.Name, joinCode, req.Private, req.PlayerID, req.PlayerName, req.Faction)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrUnknownFaction):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownFaction})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"match_id":  m.ID,
		"join_code": joinCode,
		"player_id": req.PlayerID,
	})
}

type JoinMatchPayload struct {
	JoinCode   string `json:"join_code"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Faction    string `json:"faction"`
}

// JoinMatch adds a player to a lobby via join code.
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	var req JoinMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameRequired})
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = uuid.NewString()
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return
	}
	matchID, err := h.manager.ResolveJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}

	if err := h.manager.JoinMatch(matchID, req.PlayerID, req.PlayerName, req.Faction); err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case errors.Is(err, engine.ErrNotInLobby):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyStarted})
		case errors.Is(err, engine.ErrMatchFull):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchFull})
		case errors.Is(err, engine.ErrPlayerExists):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrPlayerAlreadyJoined})
		case errors.Is(err, engine.ErrUnknownFaction):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownFaction})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match_id":  matchID,
		"player_id": req.PlayerID,
	})
}

type LeaveMatchPayload struct {
	PlayerID string `json:"player_id"`
}

// LeaveMatch removes a player from a match. Territories owned by the
// leaving player revert to neutral.
func (h *MatchHandler) LeaveMatch(c *gin.Context) {
	matchID, ok := h.resolveMatchCode(c)
	if !ok {
		return
	}
	var req LeaveMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.PlayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	if err := h.manager.LeaveMatch(matchID, req.PlayerID); err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case errors.Is(err, engine.ErrPlayerNotFound):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInMatch})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Player left the match."})
}

// StartMatch begins the first turn once enough players have joined.
func (h *MatchHandler) StartMatch(c *gin.Context) {
	matchID, ok := h.resolveMatchCode(c)
	if !ok {
		return
	}

	if err := h.manager.StartMatch(matchID); err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case errors.Is(err, engine.ErrNotInLobby):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyStarted})
		case errors.Is(err, engine.ErrPlayerCount):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrPlayerCountRange})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Match started."})
}

// resolveMatchCode validates the :matchCode path param and resolves it to
// the internal match ID, writing the error response itself on failure.
func (h *MatchHandler) resolveMatchCode(c *gin.Context) (string, bool) {
	code := normalizeJoinCode(c.Param("matchCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return "", false
	}
	matchID, err := h.manager.ResolveJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return "", false
	}
	return matchID, true
}
