package faction

import (
	"math"

	"github.com/thelaith/satire-empire/internal/game"
)

// InfluencerCult weaponizes attention and trending topics to convert
// territories through pure charisma.
type InfluencerCult struct {
	base
	viralThreshold int
	trendingTopics []string
}

func NewInfluencerCult() *InfluencerCult {
	return &InfluencerCult{
		viralThreshold: 50,
		base: base{def: Definition{
			ID:              "influencer-cult",
			Name:            "The Influencer Cult",
			Description:     "Masters of viral marketing and social manipulation.",
			SatiricalTarget: "Social media influencers and viral marketing culture",
			Color:           "#FF6B9D",
			Abilities: []Ability{
				{
					ID:              "go-viral",
					Name:            "Go Viral",
					Description:     "Amplify influence actions with viral spreading mechanics",
					Kind:            AbilityActive,
					CooldownSeconds: 2,
					Cost:            &game.Resources{Wealth: 5, Attention: 40},
				},
				{
					ID:              "trend-hijack",
					Name:            "Trend Hijack",
					Description:     "Steal trending topics from other players",
					Kind:            AbilityReaction,
					CooldownSeconds: 3,
					Cost:            &game.Resources{Wealth: 15, Attention: 35, Technology: 20},
				},
				{
					ID:              "cancel-campaign",
					Name:            "Cancel Campaign",
					Description:     "Reduce opponent attention through coordinated negative attention",
					Kind:            AbilityActive,
					CooldownSeconds: 2,
					Cost:            &game.Resources{Attention: 30, Technology: 15},
				},
				{
					ID:          "influencer-network",
					Name:        "Influencer Network",
					Description: "Passive attention generation bonus from controlled territories",
					Kind:        AbilityPassive,
				},
			},
			VictoryPriorities: []game.VictoryCondition{
				{Type: game.VictoryAttention, Description: "Monopolize global attention"},
				{Type: game.VictoryCultural, Description: "Achieve cultural dominance"},
				{Type: game.VictoryTerritorial, Description: "Control majority of territories"},
			},
			StartingResources: game.Resources{Wealth: 80, Attention: 100, Technology: 20},
		}},
	}
}

func (f *InfluencerCult) ActionBonus(t game.ActionType) game.ActionBonus {
	switch t {
	case game.ActionInfluence:
		return game.ActionBonus{Multiplier: 1.5, CostScale: 0.8, Description: "Viral influence spreading"}
	case game.ActionGoViral:
		return game.ActionBonus{Multiplier: 2.0, CostScale: 0.9, Description: "Explosive viral growth"}
	case game.ActionCancelCampaign:
		return game.ActionBonus{Multiplier: 1.3, CostScale: 0.7, Description: "Expert at coordinated cancellation"}
	default:
		return game.NeutralBonus()
	}
}

func (f *InfluencerCult) CanPerform(a game.PlayerAction) bool {
	switch a.Type {
	case game.ActionInfluence, game.ActionGoViral, game.ActionCancelCampaign, game.ActionTrendHijack:
		return true
	}
	// Other actions trade attention for effect; reject attention-heavy costs.
	return a.Cost.Attention <= a.Cost.Wealth*2
}

func (f *InfluencerCult) ProcessAbility(abilityID string, ctx AbilityContext) (*Outcome, error) {
	if err := f.checkEligibility(abilityID, ctx); err != nil {
		return nil, err
	}
	switch abilityID {
	case "go-viral":
		return f.goViral(ctx), nil
	case "trend-hijack":
		return f.trendHijack(ctx), nil
	case "cancel-campaign":
		return f.cancelCampaign(ctx), nil
	case "influencer-network":
		return f.influencerNetwork(ctx), nil
	}
	// checkEligibility already rejects unknown ids
	return nil, ErrUnknownAbility
}

func (f *InfluencerCult) goViral(ctx AbilityContext) *Outcome {
	viralMultiplier := 1.8
	if ctx.Resources.Attention > f.viralThreshold {
		viralMultiplier = 2.5
	}
	generated := ctx.BaseMagnitude / 2
	return &Outcome{
		Effects: map[string]any{
			"influence_multiplier": viralMultiplier,
			"spread_to_adjacent":   true,
			"attention_generated":  generated,
			"viral_reach":          minInt(3, ctx.Resources.Attention/30),
		},
		SelfDelta: game.ResourceDelta{Attention: int(math.Floor(float64(ctx.BaseMagnitude) * 0.3))},
		Consequences: []game.Consequence{{
			Type:        "narrative-event",
			Description: ctx.PlayerName + "'s content goes viral, spreading influence like wildfire!",
		}},
	}
}

func (f *InfluencerCult) trendHijack(ctx AbilityContext) *Outcome {
	stolen := int(math.Floor(float64(ctx.TargetResources.Attention) * 0.15))
	return &Outcome{
		Effects: map[string]any{
			"topics_stolen":    f.TrendingTopics(),
			"attention_stolen": stolen,
			"influence_bonus":  1.4,
		},
		SelfDelta:      game.ResourceDelta{Attention: stolen},
		TargetPlayerID: ctx.TargetPlayerID,
		TargetDelta:    game.ResourceDelta{Attention: -stolen},
		Consequences: []game.Consequence{{
			Type:         "narrative-event",
			Description:  ctx.PlayerName + " hijacks " + ctx.TargetPlayerName + "'s trending topics with superior meme game!",
			TargetPlayer: ctx.TargetPlayerID,
		}},
	}
}

func (f *InfluencerCult) cancelCampaign(ctx AbilityContext) *Outcome {
	reduction := int(math.Floor(float64(ctx.TargetResources.Attention) * 0.25))
	return &Outcome{
		Effects: map[string]any{
			"attention_reduced":    reduction,
			"public_opinion_shift": -2,
		},
		TargetPlayerID: ctx.TargetPlayerID,
		TargetDelta:    game.ResourceDelta{Attention: -reduction},
		Consequences: []game.Consequence{{
			Type:         "narrative-event",
			Description:  ctx.PlayerName + " orchestrates a devastating cancel campaign against " + ctx.TargetPlayerName + "!",
			TargetPlayer: ctx.TargetPlayerID,
		}},
	}
}

func (f *InfluencerCult) influencerNetwork(ctx AbilityContext) *Outcome {
	bonus := ctx.TerritoryCount * 3
	return &Outcome{
		Effects: map[string]any{
			"passive_attention_bonus": bonus,
			"viral_potential":         minInt(100, ctx.TerritoryCount*10),
		},
		SelfDelta: game.ResourceDelta{Attention: bonus},
	}
}

// AddTrendingTopic records a topic, keeping only the five most recent.
func (f *InfluencerCult) AddTrendingTopic(topic string) {
	for _, t := range f.trendingTopics {
		if t == topic {
			return
		}
	}
	f.trendingTopics = append(f.trendingTopics, topic)
	if len(f.trendingTopics) > 5 {
		f.trendingTopics = f.trendingTopics[1:]
	}
}

// TrendingTopics returns a copy of the current trending topics.
func (f *InfluencerCult) TrendingTopics() []string {
	out := make([]string, len(f.trendingTopics))
	copy(out, f.trendingTopics)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
