package api

import (
	"github.com/thelaith/satire-empire/internal/config"
	"github.com/thelaith/satire-empire/internal/service"
	"github.com/thelaith/satire-empire/internal/storage"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	manager *service.Manager
	repo    storage.Repository
	limits  config.Limits
}

// NewMatchHandler creates a new MatchHandler with the given match manager,
// repository and configured player limits.
func NewMatchHandler(manager *service.Manager, repo storage.Repository, limits config.Limits) *MatchHandler {
	return &MatchHandler{manager: manager, repo: repo, limits: limits}
}
