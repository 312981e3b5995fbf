package api

import (
	"errors"
	"net/http"

	"github.com/thelaith/satire-empire/internal/constants"
	"github.com/thelaith/satire-empire/internal/engine"
	"github.com/thelaith/satire-empire/internal/game"
	"github.com/thelaith/satire-empire/internal/service"

	"github.com/gin-gonic/gin"
)

type ActionRequest struct {
	PlayerID string         `json:"player_id"`
	Type     string         `json:"type"`
	Target   string         `json:"target"`
	Cost     game.Resources `json:"cost"`
}

// SubmitAction queues a player's action for resolution at the end of the
// current action phase. Nothing is charged until the action resolves.
func (h *MatchHandler) SubmitAction(c *gin.Context) {
	matchID, ok := h.resolveMatchCode(c)
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PlayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	action := game.PlayerAction{
		Type:   game.ActionType(req.Type),
		Target: req.Target,
		Cost:   req.Cost,
	}
	if err := h.manager.SubmitAction(matchID, req.PlayerID, action); err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case errors.Is(err, engine.ErrPlayerNotFound):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInMatch})
		case errors.Is(err, engine.ErrNotActionPhase):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotActionPhase})
		case errors.Is(err, engine.ErrActionQuotaReached):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionQuotaReached})
		case errors.Is(err, engine.ErrInsufficientResources):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrInsufficientRes})
		case errors.Is(err, engine.ErrUnknownAction):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownActionType})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Action queued."})
}

// AdvancePhase forces the current phase to end early. Matches normally
// advance on their own when the phase timer fires.
func (h *MatchHandler) AdvancePhase(c *gin.Context) {
	matchID, ok := h.resolveMatchCode(c)
	if !ok {
		return
	}

	if err := h.manager.AdvancePhase(matchID); err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case errors.Is(err, engine.ErrMatchFinished):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchFinished})
		case errors.Is(err, engine.ErrNotAdvanceable):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrPhaseNotAdvanceable})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedAdvancePhase})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Phase advanced."})
}
