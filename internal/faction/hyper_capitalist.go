package faction

import (
	"math"

	"github.com/thelaith/satire-empire/internal/game"
)

// HyperCapitalist buys what it cannot win and sponsors what it cannot buy.
type HyperCapitalist struct {
	base
}

func NewHyperCapitalist() *HyperCapitalist {
	return &HyperCapitalist{
		base: base{def: Definition{
			ID:              "hyper-capitalist",
			Name:            "The Hyper-Capitalist Syndicate",
			Description:     "Everything is for sale, including the narrative.",
			SatiricalTarget: "Speculative finance and limitless-growth capitalism",
			Color:           "#FFD700",
			Abilities: []Ability{
				{
					ID:              "cancel-campaign",
					Name:            "Sponsor Pullout",
					Description:     "Defund a rival's entire media apparatus overnight",
					Kind:            AbilityActive,
					CooldownSeconds: 2,
					Cost:            &game.Resources{Wealth: 40, Attention: 10},
				},
				{
					ID:              "trend-hijack",
					Name:            "Buy The Trend",
					Description:     "Acquire the trending topic, its creator and its audience",
					Kind:            AbilityReaction,
					CooldownSeconds: 3,
					Cost:            &game.Resources{Wealth: 50, Attention: 10, Technology: 5},
					Conditions: []Condition{
						{Type: ConditionResourceThreshold, Resource: "wealth", Value: 50, Comparison: CompareGreaterEqual},
					},
				},
				{
					ID:          "compound-interest",
					Name:        "Compound Interest",
					Description: "Passive wealth generation from controlled territories",
					Kind:        AbilityPassive,
				},
			},
			VictoryPriorities: []game.VictoryCondition{
				{Type: game.VictoryEconomic, Description: "Accumulate an unassailable fortune"},
				{Type: game.VictoryTerritorial, Description: "Control majority of territories"},
				{Type: game.VictoryAttention, Description: "Buy every billboard on the planet"},
			},
			StartingResources: game.Resources{Wealth: 150, Attention: 40, Technology: 35},
		}},
	}
}

func (f *HyperCapitalist) ActionBonus(t game.ActionType) game.ActionBonus {
	switch t {
	case game.ActionInvest:
		return game.ActionBonus{Multiplier: 1.5, CostScale: 0.8, Description: "Superior investment returns"}
	case game.ActionCancelCampaign:
		return game.ActionBonus{Multiplier: 1.2, CostScale: 0.9, Description: "Market manipulation expertise"}
	default:
		return game.NeutralBonus()
	}
}

func (f *HyperCapitalist) CanPerform(a game.PlayerAction) bool {
	switch a.Type {
	case game.ActionInvest, game.ActionInvade, game.ActionCancelCampaign, game.ActionTrendHijack:
		return true
	}
	// Technology is outsourced; reject tech-heavy costs money cannot cover.
	return a.Cost.Technology <= a.Cost.Wealth*2
}

func (f *HyperCapitalist) ProcessAbility(abilityID string, ctx AbilityContext) (*Outcome, error) {
	if err := f.checkEligibility(abilityID, ctx); err != nil {
		return nil, err
	}
	switch abilityID {
	case "cancel-campaign":
		return f.sponsorPullout(ctx), nil
	case "trend-hijack":
		return f.buyTheTrend(ctx), nil
	case "compound-interest":
		return f.compoundInterest(ctx), nil
	}
	return nil, ErrUnknownAbility
}

func (f *HyperCapitalist) sponsorPullout(ctx AbilityContext) *Outcome {
	attentionHit := int(math.Floor(float64(ctx.TargetResources.Attention) * 0.2))
	wealthHit := int(math.Floor(float64(ctx.TargetResources.Wealth) * 0.1))
	return &Outcome{
		Effects: map[string]any{
			"attention_reduced": attentionHit,
			"wealth_reduced":    wealthHit,
		},
		TargetPlayerID: ctx.TargetPlayerID,
		TargetDelta:    game.ResourceDelta{Attention: -attentionHit, Wealth: -wealthHit},
		Consequences: []game.Consequence{{
			Type:         "narrative-event",
			Description:  ctx.PlayerName + " pulls every sponsor from " + ctx.TargetPlayerName + "'s empire in a single board meeting.",
			TargetPlayer: ctx.TargetPlayerID,
		}},
	}
}

func (f *HyperCapitalist) buyTheTrend(ctx AbilityContext) *Outcome {
	bought := int(math.Floor(float64(ctx.TargetResources.Attention) * 0.15))
	return &Outcome{
		Effects: map[string]any{
			"attention_stolen": bought,
			"acquisition":      true,
		},
		SelfDelta:      game.ResourceDelta{Attention: bought},
		TargetPlayerID: ctx.TargetPlayerID,
		TargetDelta:    game.ResourceDelta{Attention: -bought},
		Consequences: []game.Consequence{{
			Type:         "narrative-event",
			Description:  ctx.PlayerName + " simply purchases " + ctx.TargetPlayerName + "'s trending topic, rebranding it by lunch.",
			TargetPlayer: ctx.TargetPlayerID,
		}},
	}
}

func (f *HyperCapitalist) compoundInterest(ctx AbilityContext) *Outcome {
	bonus := ctx.TerritoryCount * 3
	return &Outcome{
		Effects:   map[string]any{"passive_wealth_bonus": bonus},
		SelfDelta: game.ResourceDelta{Wealth: bonus},
	}
}
