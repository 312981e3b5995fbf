package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thelaith/satire-empire/internal/faction"
	"github.com/thelaith/satire-empire/internal/game"
)

// resolutionContext carries the state of one resolution pass. Resolution is
// total: it always terminates with every queue cleared and the match
// consistent, even when individual actions fail.
type resolutionContext struct {
	e         *Engine
	m         *game.Match
	now       time.Time
	headlines []string
}

func newResolutionContext(e *Engine) *resolutionContext {
	return &resolutionContext{e: e, m: e.match, now: e.now()}
}

// resolveAll drains every player's queue, resolves each action in
// deterministic order and applies the aggregate effects. Triggered exactly
// once per action-phase -> breaking-news transition.
func (rc *resolutionContext) resolveAll() []game.ActionResolution {
	actions := rc.flattenQueues()
	// Stable sort by submission time; ties keep queue insertion order so
	// resolution is reproducible for a given submission history.
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].SubmittedAt.Before(actions[j].SubmittedAt)
	})

	resolutions := make([]game.ActionResolution, 0, len(actions))
	for _, qa := range actions {
		resolutions = append(resolutions, rc.resolveAction(qa))
	}

	rc.applyDeductions(resolutions)
	rc.m.Events = rc.buildEvents(resolutions)
	rc.headlines = rc.buildHeadlines(resolutions)

	// Queues are cleared unconditionally, resolved or not.
	for i := range rc.m.Players {
		rc.m.Players[i].Actions = []game.QueuedAction{}
	}
	return resolutions
}

func (rc *resolutionContext) flattenQueues() []game.QueuedAction {
	out := make([]game.QueuedAction, 0, 16)
	for i := range rc.m.Players {
		out = append(out, rc.m.Players[i].Actions...)
	}
	return out
}

func (rc *resolutionContext) resolveAction(qa game.QueuedAction) game.ActionResolution {
	player := rc.m.PlayerByID(qa.PlayerID)
	if player == nil {
		return failed(qa, "acting player no longer in match")
	}
	fac := rc.e.factions[qa.PlayerID]
	if fac == nil {
		return failed(qa, "no faction bound to player")
	}
	if !fac.CanPerform(game.PlayerAction{Type: qa.Type, Target: qa.Target, Cost: qa.Cost}) {
		return failed(qa, fmt.Sprintf("%s does not permit %s", fac.Name(), qa.Type))
	}

	bonus := fac.ActionBonus(qa.Type)
	if abilityID := qa.Type.AbilityID(); abilityID != "" {
		return rc.resolveAbility(qa, player, fac, abilityID, bonus)
	}

	switch qa.Type {
	case game.ActionInvest:
		return rc.resolveInvest(qa, player, bonus)
	case game.ActionInfluence:
		return rc.resolveInfluence(qa, player, bonus)
	case game.ActionInvade:
		return rc.resolveInvade(qa, player, bonus)
	}
	return failed(qa, fmt.Sprintf("unknown action type %s", qa.Type))
}

func (rc *resolutionContext) resolveInvest(qa game.QueuedAction, player *game.Player, bonus game.ActionBonus) game.ActionResolution {
	t := rc.m.TerritoryByID(qa.Target)
	if t == nil {
		return failed(qa, "target territory does not exist")
	}
	if t.Owner != player.ID {
		return failed(qa, "can only invest in owned territory")
	}
	gain := scale(rc.e.rules.Balance.InvestGain, bonus.Multiplier)
	t.Generation.Wealth += gain
	return succeeded(qa,
		[]game.Consequence{{
			Type:        "territory-change",
			Description: fmt.Sprintf("%s wealth generation rises by %d", t.Name, gain),
			Effects:     map[string]any{"wealth_generation_delta": gain},
		}},
		fmt.Sprintf("%s pours money into %s; local rents immediately triple.", player.Name, t.Name),
	)
}

func (rc *resolutionContext) resolveInfluence(qa game.QueuedAction, player *game.Player, bonus game.ActionBonus) game.ActionResolution {
	t := rc.m.TerritoryByID(qa.Target)
	if t == nil {
		return failed(qa, "target territory does not exist")
	}
	gain := scale(rc.e.rules.Balance.InfluenceGain, bonus.Multiplier)
	if t.Influence == nil {
		t.Influence = map[string]int{}
	}
	t.Influence[player.ID] += gain

	consequences := []game.Consequence{{
		Type:        "faction-bonus",
		Description: fmt.Sprintf("%s gains %d influence in %s", player.Name, gain, t.Name),
		Effects:     map[string]any{"influence_delta": gain},
	}}
	narrative := fmt.Sprintf("%s's narrative takes hold in %s.", player.Name, t.Name)

	if rc.influenceFlips(t, player.ID) {
		rc.transferOwnership(t, player)
		consequences = append(consequences, game.Consequence{
			Type:        "territory-change",
			Description: fmt.Sprintf("%s converts to %s through sheer influence", t.Name, player.Name),
			Effects:     map[string]any{"new_owner": player.ID},
		})
		narrative = fmt.Sprintf("%s wins hearts, minds and ad impressions: %s changes hands without a shot fired.", player.Name, t.Name)
	}
	return succeeded(qa, consequences, narrative)
}

// influenceFlips reports whether the claimant's influence reached the flip
// threshold and strictly exceeds every other claim on the territory.
func (rc *resolutionContext) influenceFlips(t *game.Territory, playerID string) bool {
	if t.Owner == playerID {
		return false
	}
	mine := t.Influence[playerID]
	if mine < rc.e.rules.Balance.InfluenceFlipThreshold {
		return false
	}
	for id, v := range t.Influence {
		if id != playerID && v >= mine {
			return false
		}
	}
	return true
}

func (rc *resolutionContext) resolveInvade(qa game.QueuedAction, player *game.Player, bonus game.ActionBonus) game.ActionResolution {
	t := rc.m.TerritoryByID(qa.Target)
	if t == nil {
		return failed(qa, "target territory does not exist")
	}
	if t.Owner == player.ID {
		return failed(qa, "cannot invade own territory")
	}

	strength := scale(qa.Cost.Wealth+qa.Cost.Technology, bonus.Multiplier)
	defense := t.Generation.Total()
	if t.Owner != "" {
		defense += rc.e.rules.Balance.GarrisonBonus
	}
	if strength < defense {
		return failed(qa, fmt.Sprintf("invasion repelled: strength %d against defense %d", strength, defense))
	}

	previous := t.Owner
	rc.transferOwnership(t, player)
	t.Influence = map[string]int{}
	effects := map[string]any{"new_owner": player.ID, "strength": strength, "defense": defense}
	if previous != "" {
		effects["previous_owner"] = previous
	}
	return succeeded(qa,
		[]game.Consequence{{
			Type:        "territory-change",
			Description: fmt.Sprintf("%s seizes %s (strength %d vs defense %d)", player.Name, t.Name, strength, defense),
			Effects:     effects,
		}},
		fmt.Sprintf("%s annexes %s and immediately renames the airport.", player.Name, t.Name),
	)
}

func (rc *resolutionContext) resolveAbility(qa game.QueuedAction, player *game.Player, fac faction.Faction, abilityID string, bonus game.ActionBonus) game.ActionResolution {
	ctx := faction.AbilityContext{
		PlayerID:       player.ID,
		PlayerName:     player.Name,
		Resources:      player.Resources,
		TerritoryCount: len(player.Territories),
		Turn:           rc.m.Turn,
		BaseMagnitude:  scale(rc.e.rules.Balance.InfluenceGain, bonus.Multiplier),
		LastUsed:       player.AbilityLastUsed[abilityID],
		Now:            rc.now,
	}
	// Targeted abilities aim at a territory; the target player is its owner.
	if t := rc.m.TerritoryByID(qa.Target); t != nil && t.Owner != "" && t.Owner != player.ID {
		if target := rc.m.PlayerByID(t.Owner); target != nil {
			ctx.TargetPlayerID = target.ID
			ctx.TargetPlayerName = target.Name
			ctx.TargetResources = target.Resources
		}
	}

	outcome, err := fac.ProcessAbility(abilityID, ctx)
	if err != nil {
		if errors.Is(err, faction.ErrAbilityUnavailable) || errors.Is(err, faction.ErrUnknownAbility) {
			// Recorded as a no-op consequence; resolution continues.
			res := failed(qa, err.Error())
			res.Result.Consequences = []game.Consequence{{
				Type:        "narrative-event",
				Description: fmt.Sprintf("%s's %s fizzles before it starts.", player.Name, abilityID),
			}}
			return res
		}
		return failed(qa, err.Error())
	}

	player.Resources.Apply(outcome.SelfDelta)
	if outcome.TargetPlayerID != "" {
		if target := rc.m.PlayerByID(outcome.TargetPlayerID); target != nil {
			target.Resources.Apply(outcome.TargetDelta)
		}
	}
	if player.AbilityLastUsed == nil {
		player.AbilityLastUsed = map[string]time.Time{}
	}
	player.AbilityLastUsed[abilityID] = rc.now

	consequences := append([]game.Consequence{}, outcome.Consequences...)
	consequences = append(consequences, game.Consequence{
		Type:        "faction-bonus",
		Description: fmt.Sprintf("%s resolves %s", player.Name, abilityID),
		Effects:     outcome.Effects,
	})
	return succeeded(qa, consequences,
		fmt.Sprintf("%s unleashes %s on the news cycle.", player.Name, abilityID))
}

// applyDeductions charges every successfully resolved action's cost-scaled
// cost to its owner, clamping each resource to zero independently. Queued
// actions can jointly overdraft a balance; resolution never goes negative.
func (rc *resolutionContext) applyDeductions(resolutions []game.ActionResolution) {
	for i := range resolutions {
		res := &resolutions[i]
		if !res.Result.Success {
			continue
		}
		player := rc.m.PlayerByID(res.PlayerID)
		if player == nil {
			continue
		}
		fac := rc.e.factions[res.PlayerID]
		cost := res.Action.Cost
		if fac != nil {
			cost = cost.Scale(fac.ActionBonus(res.Action.Type).CostScale)
		}
		player.Resources.Deduct(cost)
	}
}

func (rc *resolutionContext) buildEvents(resolutions []game.ActionResolution) []game.Event {
	events := make([]game.Event, 0, len(resolutions))
	for _, res := range resolutions {
		events = append(events, game.Event{
			ID:           uuid.NewString(),
			Category:     "action-consequence",
			Title:        fmt.Sprintf("Action Result: %s", res.Action.Type),
			Description:  strings.Join(res.Narrative, " "),
			Turn:         rc.m.Turn,
			Consequences: res.Result.Consequences,
		})
	}
	return events
}

func (rc *resolutionContext) buildHeadlines(resolutions []game.ActionResolution) []string {
	headlines := make([]string, 0, len(resolutions))
	for _, res := range resolutions {
		name := "Mystery Player"
		if p := rc.m.PlayerByID(res.PlayerID); p != nil {
			name = p.Name
		}
		if res.Result.Success {
			headlines = append(headlines, fmt.Sprintf("BREAKING: %s Causes Chaos with %s!", name, strings.ToUpper(string(res.Action.Type))))
		} else {
			headlines = append(headlines, fmt.Sprintf("BREAKING: %s's %s Ends in Public Embarrassment!", name, strings.ToUpper(string(res.Action.Type))))
		}
	}
	return headlines
}

func (rc *resolutionContext) transferOwnership(t *game.Territory, to *game.Player) {
	if t.Owner != "" {
		if prev := rc.m.PlayerByID(t.Owner); prev != nil {
			for i, id := range prev.Territories {
				if id == t.ID {
					prev.Territories = append(prev.Territories[:i], prev.Territories[i+1:]...)
					break
				}
			}
		}
	}
	t.Owner = to.ID
	to.Territories = append(to.Territories, t.ID)
}

func failed(qa game.QueuedAction, reason string) game.ActionResolution {
	return game.ActionResolution{
		Action:   qa,
		PlayerID: qa.PlayerID,
		Result:   game.ActionResult{Success: false, Error: reason},
		Narrative: []string{
			fmt.Sprintf("%s attempt on %s fails: %s", qa.Type, qa.Target, reason),
		},
	}
}

func succeeded(qa game.QueuedAction, consequences []game.Consequence, narrative string) game.ActionResolution {
	return game.ActionResolution{
		Action:    qa,
		PlayerID:  qa.PlayerID,
		Result:    game.ActionResult{Success: true, Consequences: consequences},
		Narrative: []string{narrative},
	}
}

func scale(base int, multiplier float64) int {
	return int(math.Floor(float64(base) * multiplier))
}
