package game

import "time"

// Match is the authoritative state of one running game. It is owned
// exclusively by a single engine instance for the match's lifetime; all
// mutation goes through the engine's public operations.
type Match struct {
	ID       string   `json:"id"`
	Version  string   `json:"version"`
	Name     string   `json:"name"`
	JoinCode string   `json:"join_code"`
	Private  bool     `json:"private"`
	Turn     int      `json:"turn"`
	Phase    Phase    `json:"phase"`
	Winner   string   `json:"winner"`
	Players  []Player `json:"players"`

	Territories []Territory `json:"territories"`
	// Events holds only the current turn's events; resolution replaces the
	// list wholesale. Archiving history is the caller's concern.
	Events []Event `json:"events"`

	// PhaseEndsAt is the wall-clock deadline of the current phase. Zero for
	// lobby and finished.
	PhaseEndsAt time.Time `json:"phase_ends_at"`
	Metadata    Metadata  `json:"metadata"`
}

// Metadata carries bookkeeping that never influences resolution.
type Metadata struct {
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	MaxPlayers int       `json:"max_players"`
	Mode       string    `json:"mode"`
}

// Player is one participant. Resources and the action queue are mutated
// only by the engine during validation and resolution.
type Player struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Faction      string         `json:"faction"`
	Resources    Resources      `json:"resources"`
	Territories  []string       `json:"territories"`
	Actions      []QueuedAction `json:"actions"`
	Connected    bool           `json:"connected"`
	LastActionAt time.Time      `json:"last_action_at"`
	// AbilityLastUsed tracks the most recent invocation per ability id so
	// cooldown gates survive a snapshot round-trip.
	AbilityLastUsed map[string]time.Time `json:"ability_last_used,omitempty"`
}

// Position is display-only; the engine never reads it.
type Position struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Territory is one region on the board. Ownership transitions only via
// resolution or player removal.
type Territory struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Owner             string         `json:"owner,omitempty"`
	Position          Position       `json:"position"`
	Generation        Resources      `json:"generation"`
	Influence         map[string]int `json:"influence"`
	SpecialProperties []string       `json:"special_properties,omitempty"`
}

// PlayerAction is a player's intent as received from the request layer,
// before validation wraps it into a QueuedAction.
type PlayerAction struct {
	Type   ActionType `json:"type"`
	Target string     `json:"target"`
	Cost   Resources  `json:"cost"`
}

// QueuedAction is a validated, submitted-but-not-yet-resolved intent.
type QueuedAction struct {
	ID          string     `json:"id"`
	PlayerID    string     `json:"player_id"`
	Type        ActionType `json:"type"`
	Target      string     `json:"target"`
	Cost        Resources  `json:"cost"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

// Consequence is one structured effect attached to an event or resolution.
// Effects is faction- or action-specific and is passed through to event
// generation without interpretation by the engine.
type Consequence struct {
	Type         string         `json:"type"`
	Description  string         `json:"description"`
	Effects      map[string]any `json:"effects,omitempty"`
	TargetPlayer string         `json:"target_player,omitempty"`
}

// ActionResult is the success/error outcome of resolving one action.
type ActionResult struct {
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	Consequences []Consequence `json:"consequences,omitempty"`
}

// ActionResolution is the ephemeral result of resolving one QueuedAction.
// It feeds event and headline generation and is not persisted.
type ActionResolution struct {
	Action    QueuedAction `json:"action"`
	PlayerID  string       `json:"player_id"`
	Result    ActionResult `json:"result"`
	Narrative []string     `json:"narrative"`
}

// Event is one entry in the current turn's news feed.
type Event struct {
	ID           string        `json:"id"`
	Category     string        `json:"category"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Turn         int           `json:"turn"`
	Consequences []Consequence `json:"consequences,omitempty"`
	ExpiresAt    *time.Time    `json:"expires_at,omitempty"`
}

// VictoryCondition declares one way a faction prefers to win. Only the
// territorial type is evaluated; the rest are declared in faction data.
type VictoryCondition struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

const (
	VictoryTerritorial   = "territorial-domination"
	VictoryEconomic      = "economic-empire"
	VictoryCultural      = "cultural-hegemony"
	VictoryTechnological = "innovation-leader"
	VictoryAttention     = "attention-monopoly"
)

// ActionBonus is a faction's modifier for one action type. Multiplier
// scales the effect magnitude, CostScale scales the deducted cost.
type ActionBonus struct {
	Multiplier  float64 `json:"multiplier"`
	CostScale   float64 `json:"cost_scale"`
	Description string  `json:"description,omitempty"`
}

// NeutralBonus is returned for action types a faction does not specialize in.
func NeutralBonus() ActionBonus {
	return ActionBonus{Multiplier: 1.0, CostScale: 1.0}
}

// PlayerByID returns a pointer into the match's player slice, or nil.
func (m *Match) PlayerByID(id string) *Player {
	for i := range m.Players {
		if m.Players[i].ID == id {
			return &m.Players[i]
		}
	}
	return nil
}

// TerritoryByID returns a pointer into the match's territory slice, or nil.
func (m *Match) TerritoryByID(id string) *Territory {
	for i := range m.Territories {
		if m.Territories[i].ID == id {
			return &m.Territories[i]
		}
	}
	return nil
}

// TimeRemaining reports whole seconds until the current phase deadline,
// never negative.
func (m *Match) TimeRemaining(now time.Time) int {
	if m.PhaseEndsAt.IsZero() || !now.Before(m.PhaseEndsAt) {
		return 0
	}
	return int(m.PhaseEndsAt.Sub(now).Seconds())
}
