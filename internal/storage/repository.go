package storage

import (
	"time"

	"github.com/thelaith/satire-empire/internal/game"
)

// MatchSummary is the lobby-browser projection of a stored match.
type MatchSummary struct {
	MatchID     string `json:"match_id"`
	Name        string `json:"name"`
	JoinCode    string `json:"join_code"`
	Phase       string `json:"phase"`
	Turn        int    `json:"turn"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

type Repository interface {
	// SaveMatch upserts the full serialized snapshot for a match.
	SaveMatch(m *game.Match) error
	GetMatchByID(id string) (*game.Match, error)
	FindMatchByJoinCode(code string) (*game.Match, error)
	// ListPublicMatches returns non-private, non-finished matches for the
	// lobby browser.
	ListPublicMatches() ([]MatchSummary, error)
	// FindDueMatchIDs returns ids of unfinished matches whose phase
	// deadline is at or before now. The caller decides how to advance
	// them; this exists so deadlines missed while the process was down
	// are not lost.
	FindDueMatchIDs(now time.Time) ([]string, error)
	DeleteMatch(id string) error
}
