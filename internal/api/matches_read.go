package api

import (
	"errors"
	"net/http"

	"github.com/thelaith/satire-empire/internal/constants"
	"github.com/thelaith/satire-empire/internal/dedupe"
	"github.com/thelaith/satire-empire/internal/faction"
	"github.com/thelaith/satire-empire/internal/service"
	"github.com/thelaith/satire-empire/internal/storage"

	"github.com/gin-gonic/gin"
)

// ListFactions returns the playable faction definitions.
func (h *MatchHandler) ListFactions(c *gin.Context) {
	ids := faction.IDs()
	defs := make([]faction.Definition, 0, len(ids))
	for _, id := range ids {
		f, err := faction.New(id)
		if err != nil {
			continue
		}
		defs = append(defs, f.Definition())
	}
	c.JSON(http.StatusOK, defs)
}

// ListPublicMatches returns all public matches that have not finished.
// Concurrent lobby polls share a single database query.
func (h *MatchHandler) ListPublicMatches(c *gin.Context) {
	v, err, _ := dedupe.ListGroup.Do("public-matches", func() (interface{}, error) {
		return h.repo.ListPublicMatches()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	matches, _ := v.([]storage.MatchSummary)
	c.JSON(http.StatusOK, matches)
}

// GetMatch returns the current state of a match by join code.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, ok := h.resolveMatchCode(c)
	if !ok {
		return
	}
	m, err := h.manager.GetMatch(matchID)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeMatch})
		return
	}
	c.JSON(http.StatusOK, m)
}
