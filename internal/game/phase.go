package game

// Phase is a named stage within a turn. Using a dedicated type instead of
// plain string makes code safer and self-documenting.
type Phase string

const (
	PhaseLobby        Phase = "lobby"
	PhaseMorningBrief Phase = "morning-brief"
	PhaseAction       Phase = "action-phase"
	PhaseBreakingNews Phase = "breaking-news"
	PhaseFinished     Phase = "finished"
)

// ActionType identifies a player's submitted intent. The first three are
// generic actions available to everyone; the rest are faction abilities
// routed through the faction's ability processor at resolution time.
type ActionType string

const (
	ActionInvest         ActionType = "invest"
	ActionInfluence      ActionType = "influence"
	ActionInvade         ActionType = "invade"
	ActionGoViral        ActionType = "go-viral"
	ActionCancelCampaign ActionType = "cancel-campaign"
	ActionTrendHijack    ActionType = "trend-hijack"
)

// AbilityID returns the faction ability id behind an action type, or ""
// when the action is a generic one.
func (t ActionType) AbilityID() string {
	switch t {
	case ActionGoViral, ActionCancelCampaign, ActionTrendHijack:
		return string(t)
	}
	return ""
}
