package faction

import (
	"errors"
	"fmt"
	"time"

	"github.com/thelaith/satire-empire/internal/game"
)

// ErrAbilityUnavailable reports a failed eligibility gate (cooldown, cost
// or condition). Callers must check for it explicitly; it is never a hard
// fault and resolution continues with other actions.
var ErrAbilityUnavailable = errors.New("ability unavailable")

// ErrUnknownAbility reports an ability id the faction does not define.
var ErrUnknownAbility = errors.New("unknown ability")

// AbilityKind distinguishes how an ability is triggered.
type AbilityKind string

const (
	AbilityPassive  AbilityKind = "passive"
	AbilityActive   AbilityKind = "active"
	AbilityReaction AbilityKind = "reaction"
)

// Comparison operators for ability conditions.
const (
	CompareEquals       = "equals"
	CompareGreater      = "greater"
	CompareLess         = "less"
	CompareGreaterEqual = "greater-equal"
	CompareLessEqual    = "less-equal"
)

// Condition types for ability gating.
const (
	ConditionResourceThreshold = "resource-threshold"
	ConditionTerritoryCount    = "territory-count"
	ConditionTurnNumber        = "turn-number"
)

// Condition is one typed predicate gating an ability. All of an ability's
// conditions must hold for the ability to fire.
type Condition struct {
	Type       string `json:"type"`
	Resource   string `json:"resource,omitempty"`
	Value      int    `json:"value"`
	Comparison string `json:"comparison"`
}

// Ability is one faction-specific gated action.
type Ability struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Kind            AbilityKind     `json:"kind"`
	CooldownSeconds int             `json:"cooldown_seconds,omitempty"`
	Cost            *game.Resources `json:"cost,omitempty"`
	Conditions      []Condition     `json:"conditions,omitempty"`
}

// Definition is the immutable per-faction configuration. Loaded once at
// faction construction and never mutated.
type Definition struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	Description       string                  `json:"description"`
	SatiricalTarget   string                  `json:"satirical_target"`
	Color             string                  `json:"color"`
	Abilities         []Ability               `json:"abilities"`
	VictoryPriorities []game.VictoryCondition `json:"victory_priorities"`
	StartingResources game.Resources          `json:"starting_resources"`
}

// AbilityContext is the live state an ability reads at the instant of
// invocation. There is no reservation across the cooldown window.
type AbilityContext struct {
	PlayerID       string
	PlayerName     string
	Resources      game.Resources
	TerritoryCount int
	Turn           int
	// BaseMagnitude is the pre-bonus effect size of the action carrying the
	// ability (e.g. the influence an influence-type ability amplifies).
	BaseMagnitude int
	// LastUsed is zero when the ability has never fired for this player.
	LastUsed time.Time
	Now      time.Time

	TargetPlayerID   string
	TargetPlayerName string
	TargetResources  game.Resources
}

// Outcome is the structured effect bundle of a successful ability. The
// engine applies the typed deltas and passes Effects and Consequences
// through to event generation without interpreting them.
type Outcome struct {
	Effects        map[string]any
	SelfDelta      game.ResourceDelta
	TargetPlayerID string
	TargetDelta    game.ResourceDelta
	Consequences   []game.Consequence
}

// Faction is the capability set common to all factions. The engine always
// calls through this interface and never branches on faction identity.
type Faction interface {
	ID() string
	Name() string
	Definition() Definition
	// ActionBonus returns the multiplier and cost scale for an action type.
	// Unspecialized types return the neutral {1.0, 1.0} bonus.
	ActionBonus(t game.ActionType) game.ActionBonus
	CanPerform(a game.PlayerAction) bool
	VictoryPriorities() []game.VictoryCondition
	ProcessAbility(abilityID string, ctx AbilityContext) (*Outcome, error)
}

// base carries the definition and the shared eligibility gate. Concrete
// factions embed it and supply their own bonus tables and processors.
type base struct {
	def Definition
}

func (b *base) ID() string             { return b.def.ID }
func (b *base) Name() string           { return b.def.Name }
func (b *base) Definition() Definition { return b.def }

func (b *base) VictoryPriorities() []game.VictoryCondition {
	return b.def.VictoryPriorities
}

func (b *base) StartingResources() game.Resources {
	return b.def.StartingResources
}

func (b *base) ability(id string) *Ability {
	for i := range b.def.Abilities {
		if b.def.Abilities[i].ID == id {
			return &b.def.Abilities[i]
		}
	}
	return nil
}

// checkEligibility runs the shared gates in order: cooldown, cost,
// conditions. The first failed gate wins.
func (b *base) checkEligibility(abilityID string, ctx AbilityContext) error {
	ability := b.ability(abilityID)
	if ability == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAbility, abilityID)
	}

	if ability.CooldownSeconds > 0 && !ctx.LastUsed.IsZero() {
		window := time.Duration(ability.CooldownSeconds) * time.Second
		if ctx.Now.Sub(ctx.LastUsed) < window {
			return fmt.Errorf("%w: %s on cooldown", ErrAbilityUnavailable, abilityID)
		}
	}

	if ability.Cost != nil && ability.Cost.Exceeds(ctx.Resources) {
		return fmt.Errorf("%w: insufficient resources for %s", ErrAbilityUnavailable, abilityID)
	}

	for _, cond := range ability.Conditions {
		if !evaluateCondition(cond, ctx) {
			return fmt.Errorf("%w: condition %s not met for %s", ErrAbilityUnavailable, cond.Type, abilityID)
		}
	}
	return nil
}

func evaluateCondition(cond Condition, ctx AbilityContext) bool {
	switch cond.Type {
	case ConditionResourceThreshold:
		return compareValues(resourceAxis(ctx.Resources, cond.Resource), cond.Value, cond.Comparison)
	case ConditionTerritoryCount:
		return compareValues(ctx.TerritoryCount, cond.Value, cond.Comparison)
	case ConditionTurnNumber:
		return compareValues(ctx.Turn, cond.Value, cond.Comparison)
	default:
		return true
	}
}

func resourceAxis(r game.Resources, axis string) int {
	switch axis {
	case "wealth":
		return r.Wealth
	case "attention":
		return r.Attention
	case "technology":
		return r.Technology
	}
	return 0
}

func compareValues(actual, expected int, comparison string) bool {
	switch comparison {
	case CompareEquals:
		return actual == expected
	case CompareGreater:
		return actual > expected
	case CompareLess:
		return actual < expected
	case CompareGreaterEqual:
		return actual >= expected
	case CompareLessEqual:
		return actual <= expected
	default:
		return false
	}
}
