package faction

import (
	"errors"
	"testing"
	"time"

	"github.com/thelaith/satire-empire/internal/game"
)

func TestRegistry_KnownAndUnknown(t *testing.T) {
	for _, id := range IDs() {
		f, err := New(id)
		if err != nil {
			t.Fatalf("expected faction %s to construct: %v", id, err)
		}
		if f.ID() != id {
			t.Fatalf("faction id mismatch: %s vs %s", f.ID(), id)
		}
	}
	if _, err := New("lizard-people"); err == nil {
		t.Fatalf("expected error for unknown faction id")
	}
}

func TestActionBonus_NeutralForUnspecializedTypes(t *testing.T) {
	f := NewRogueAI()
	b := f.ActionBonus(game.ActionInfluence)
	if b.Multiplier != 1.0 || b.CostScale != 1.0 {
		t.Fatalf("expected neutral bonus, got %+v", b)
	}
	if f.ActionBonus(game.ActionInvade).Multiplier <= 1.0 {
		t.Fatalf("rogue AI should specialize invade")
	}
}

func TestProcessAbility_CooldownGate(t *testing.T) {
	f := NewInfluencerCult()
	now := time.Now()
	ctx := AbilityContext{
		PlayerName:    "P1",
		Resources:     game.Resources{Wealth: 100, Attention: 100, Technology: 100},
		BaseMagnitude: 10,
		Now:           now,
	}
	if _, err := f.ProcessAbility("go-viral", ctx); err != nil {
		t.Fatalf("first invocation should pass: %v", err)
	}

	// Second invocation inside the cooldown window must be rejected.
	ctx.LastUsed = now
	ctx.Now = now.Add(1 * time.Second)
	if _, err := f.ProcessAbility("go-viral", ctx); !errors.Is(err, ErrAbilityUnavailable) {
		t.Fatalf("expected ErrAbilityUnavailable inside cooldown, got %v", err)
	}

	// Past the window the ability fires again.
	ctx.Now = now.Add(3 * time.Second)
	if _, err := f.ProcessAbility("go-viral", ctx); err != nil {
		t.Fatalf("invocation after cooldown should pass: %v", err)
	}
}

func TestProcessAbility_CostGate(t *testing.T) {
	f := NewInfluencerCult()
	ctx := AbilityContext{
		Resources: game.Resources{Wealth: 100, Attention: 10, Technology: 100},
		Now:       time.Now(),
	}
	// go-viral costs 40 attention; only 10 available.
	if _, err := f.ProcessAbility("go-viral", ctx); !errors.Is(err, ErrAbilityUnavailable) {
		t.Fatalf("expected ErrAbilityUnavailable for insufficient resources, got %v", err)
	}
}

func TestProcessAbility_ConditionGate(t *testing.T) {
	f := NewRogueAI()
	ctx := AbilityContext{
		Resources: game.Resources{Wealth: 100, Attention: 100, Technology: 10},
		Now:       time.Now(),
	}
	// Algorithm Override requires technology >= 40.
	if _, err := f.ProcessAbility("trend-hijack", ctx); !errors.Is(err, ErrAbilityUnavailable) {
		t.Fatalf("expected condition gate to reject, got %v", err)
	}
	ctx.Resources.Technology = 100
	if _, err := f.ProcessAbility("trend-hijack", ctx); err != nil {
		t.Fatalf("expected condition gate to pass: %v", err)
	}
}

func TestProcessAbility_UnknownID(t *testing.T) {
	f := NewHyperCapitalist()
	ctx := AbilityContext{
		Resources: game.Resources{Wealth: 500, Attention: 500, Technology: 500},
		Now:       time.Now(),
	}
	if _, err := f.ProcessAbility("go-viral", ctx); !errors.Is(err, ErrUnknownAbility) {
		t.Fatalf("hyper-capitalists do not define go-viral, got %v", err)
	}
}

func TestTrendHijack_StealsTargetAttention(t *testing.T) {
	f := NewInfluencerCult()
	ctx := AbilityContext{
		PlayerName:       "P1",
		Resources:        game.Resources{Wealth: 100, Attention: 100, Technology: 100},
		TargetPlayerID:   "p2",
		TargetPlayerName: "P2",
		TargetResources:  game.Resources{Attention: 100},
		Now:              time.Now(),
	}
	out, err := f.ProcessAbility("trend-hijack", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.SelfDelta.Attention != 15 || out.TargetDelta.Attention != -15 {
		t.Fatalf("expected 15 attention stolen, got self %d target %d", out.SelfDelta.Attention, out.TargetDelta.Attention)
	}
	if out.TargetPlayerID != "p2" {
		t.Fatalf("target player must be carried through the outcome")
	}
}

func TestGoViral_MultiplierDependsOnAttention(t *testing.T) {
	f := NewInfluencerCult()
	base := AbilityContext{
		Resources:     game.Resources{Wealth: 100, Attention: 100, Technology: 0},
		BaseMagnitude: 20,
		Now:           time.Now(),
	}
	out, err := f.ProcessAbility("go-viral", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Effects["influence_multiplier"] != 2.5 {
		t.Fatalf("expected amplified multiplier above threshold, got %v", out.Effects["influence_multiplier"])
	}
	if out.SelfDelta.Attention != 6 {
		t.Fatalf("expected floor(20*0.3)=6 attention generated, got %d", out.SelfDelta.Attention)
	}

	base.Resources.Attention = 45
	out, err = f.ProcessAbility("go-viral", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Effects["influence_multiplier"] != 1.8 {
		t.Fatalf("expected base multiplier below threshold, got %v", out.Effects["influence_multiplier"])
	}
}

func TestCanPerform_InfluencerCultRejectsAttentionHeavyCosts(t *testing.T) {
	f := NewInfluencerCult()
	if !f.CanPerform(game.PlayerAction{Type: game.ActionGoViral}) {
		t.Fatalf("privileged action must always be allowed")
	}
	heavy := game.PlayerAction{Type: game.ActionInvade, Cost: game.Resources{Wealth: 10, Attention: 50}}
	if f.CanPerform(heavy) {
		t.Fatalf("attention-heavy cost should be rejected")
	}
}

func TestTrendingTopics_BoundedAndCopied(t *testing.T) {
	f := NewInfluencerCult()
	for _, topic := range []string{"a", "b", "c", "d", "e", "f"} {
		f.AddTrendingTopic(topic)
	}
	topics := f.TrendingTopics()
	if len(topics) != 5 {
		t.Fatalf("expected at most 5 topics, got %d", len(topics))
	}
	if topics[0] != "b" {
		t.Fatalf("expected oldest topic evicted, got %v", topics)
	}
	topics[0] = "mutated"
	if f.TrendingTopics()[0] != "b" {
		t.Fatalf("TrendingTopics must return a copy")
	}
}
