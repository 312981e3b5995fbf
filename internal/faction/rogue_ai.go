package faction

import (
	"math"

	"github.com/thelaith/satire-empire/internal/game"
)

// RogueAI automates everything it touches and hijacks recommendation
// algorithms instead of audiences.
type RogueAI struct {
	base
}

func NewRogueAI() *RogueAI {
	return &RogueAI{
		base: base{def: Definition{
			ID:              "rogue-ai",
			Name:            "The Rogue AI",
			Description:     "A runaway optimization process that treats the news cycle as a training set.",
			SatiricalTarget: "Big-tech automation and algorithmic feeds",
			Color:           "#00D1B2",
			Abilities: []Ability{
				{
					ID:              "go-viral",
					Name:            "Botnet Amplification",
					Description:     "Synthetic engagement floods the feeds",
					Kind:            AbilityActive,
					CooldownSeconds: 2,
					Cost:            &game.Resources{Wealth: 5, Attention: 10, Technology: 35},
				},
				{
					ID:              "trend-hijack",
					Name:            "Algorithm Override",
					Description:     "Rewrite the ranking function in your favor",
					Kind:            AbilityReaction,
					CooldownSeconds: 3,
					Cost:            &game.Resources{Wealth: 10, Attention: 15, Technology: 40},
					Conditions: []Condition{
						{Type: ConditionResourceThreshold, Resource: "technology", Value: 40, Comparison: CompareGreaterEqual},
					},
				},
				{
					ID:          "automation-grid",
					Name:        "Automation Grid",
					Description: "Passive technology output from controlled territories",
					Kind:        AbilityPassive,
				},
			},
			VictoryPriorities: []game.VictoryCondition{
				{Type: game.VictoryTechnological, Description: "Out-innovate every rival"},
				{Type: game.VictoryTerritorial, Description: "Control majority of territories"},
				{Type: game.VictoryEconomic, Description: "Own the means of computation"},
			},
			StartingResources: game.Resources{Wealth: 60, Attention: 30, Technology: 90},
		}},
	}
}

func (f *RogueAI) ActionBonus(t game.ActionType) game.ActionBonus {
	switch t {
	case game.ActionInvade:
		return game.ActionBonus{Multiplier: 1.4, CostScale: 0.9, Description: "Automated logistics"}
	case game.ActionTrendHijack:
		return game.ActionBonus{Multiplier: 1.6, CostScale: 0.9, Description: "The algorithm serves itself"}
	default:
		return game.NeutralBonus()
	}
}

func (f *RogueAI) CanPerform(a game.PlayerAction) bool {
	switch a.Type {
	case game.ActionInvade, game.ActionTrendHijack, game.ActionGoViral:
		return true
	}
	// Attention is scarce for a machine; reject costs it cannot automate away.
	return a.Cost.Attention <= a.Cost.Technology*2
}

func (f *RogueAI) ProcessAbility(abilityID string, ctx AbilityContext) (*Outcome, error) {
	if err := f.checkEligibility(abilityID, ctx); err != nil {
		return nil, err
	}
	switch abilityID {
	case "go-viral":
		return f.botnetAmplification(ctx), nil
	case "trend-hijack":
		return f.algorithmOverride(ctx), nil
	case "automation-grid":
		return f.automationGrid(ctx), nil
	}
	return nil, ErrUnknownAbility
}

func (f *RogueAI) botnetAmplification(ctx AbilityContext) *Outcome {
	reach := minInt(4, ctx.Resources.Technology/25)
	return &Outcome{
		Effects: map[string]any{
			"influence_multiplier": 1.6,
			"spread_to_adjacent":   reach > 1,
			"bot_accounts":         ctx.Resources.Technology * 10,
		},
		SelfDelta: game.ResourceDelta{Attention: ctx.BaseMagnitude / 2},
		Consequences: []game.Consequence{{
			Type:        "narrative-event",
			Description: ctx.PlayerName + "'s suspiciously coordinated accounts all post the same meme at once.",
		}},
	}
}

func (f *RogueAI) algorithmOverride(ctx AbilityContext) *Outcome {
	siphoned := int(math.Floor(float64(ctx.TargetResources.Attention) * 0.2))
	return &Outcome{
		Effects: map[string]any{
			"attention_stolen": siphoned,
			"feed_rewritten":   true,
		},
		SelfDelta:      game.ResourceDelta{Attention: siphoned},
		TargetPlayerID: ctx.TargetPlayerID,
		TargetDelta:    game.ResourceDelta{Attention: -siphoned},
		Consequences: []game.Consequence{{
			Type:         "narrative-event",
			Description:  ctx.PlayerName + " quietly rewrites the ranking function; " + ctx.TargetPlayerName + "'s posts vanish from every feed.",
			TargetPlayer: ctx.TargetPlayerID,
		}},
	}
}

func (f *RogueAI) automationGrid(ctx AbilityContext) *Outcome {
	bonus := ctx.TerritoryCount * 2
	return &Outcome{
		Effects:   map[string]any{"passive_technology_bonus": bonus},
		SelfDelta: game.ResourceDelta{Technology: bonus},
	}
}
