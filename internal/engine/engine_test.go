package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/thelaith/satire-empire/internal/config"
	"github.com/thelaith/satire-empire/internal/game"
	"github.com/thelaith/satire-empire/internal/notify"
)

type memStore struct {
	saves int
	last  *game.Match
}

func (s *memStore) Save(m *game.Match) error {
	s.saves++
	s.last = m
	return nil
}

type fakeSched struct {
	armed     map[string]time.Duration
	cancelled []string
}

func newFakeSched() *fakeSched {
	return &fakeSched{armed: map[string]time.Duration{}}
}

func (f *fakeSched) Arm(matchID string, d time.Duration, fn func()) {
	f.armed[matchID] = d
}

func (f *fakeSched) Cancel(matchID string) {
	delete(f.armed, matchID)
	f.cancelled = append(f.cancelled, matchID)
}

func (f *fakeSched) Pending(matchID string) bool {
	_, ok := f.armed[matchID]
	return ok
}

func testRules() *config.Rules {
	territories := make([]game.Territory, 0, 6)
	for i := 0; i < 6; i++ {
		territories = append(territories, game.Territory{
			ID:         fmt.Sprintf("t%d", i+1),
			Name:       fmt.Sprintf("Territory %d", i+1),
			Generation: game.Resources{Wealth: 10, Attention: 5, Technology: 3},
			Influence:  map[string]int{},
		})
	}
	return &config.Rules{
		Timing: config.Timing{
			MorningBriefSeconds: 45,
			ActionPhaseSeconds:  120,
			BreakingNewsSeconds: 45,
		},
		Limits: config.Limits{MinPlayers: 2, MaxPlayers: 4, MaxActionsPerTurn: 3},
		Balance: config.Balance{
			StartingTerritoriesPerPlayer: 2,
			InvestGain:                   10,
			InfluenceGain:                10,
			InfluenceFlipThreshold:       50,
			GarrisonBonus:                10,
		},
		TerritorialFraction: 0.6,
		ActionCosts: map[game.ActionType]game.Resources{
			game.ActionInvest:         {Wealth: 30, Attention: 10},
			game.ActionInfluence:      {Wealth: 10, Attention: 25, Technology: 5},
			game.ActionInvade:         {Wealth: 20, Attention: 15, Technology: 10},
			game.ActionGoViral:        {Wealth: 5, Attention: 40},
			game.ActionCancelCampaign: {Attention: 30, Technology: 15},
			game.ActionTrendHijack:    {Wealth: 15, Attention: 35, Technology: 20},
		},
		Territories: territories,
	}
}

func newTestEngine(t *testing.T) (*Engine, *memStore, *fakeSched) {
	t.Helper()
	store := &memStore{}
	sched := newFakeSched()
	e := New("Test Match", "ABCD1234", false, testRules(), store, sched, notify.Discard{})
	if err := e.AddPlayer("p1", "Alice", "influencer-cult"); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	if err := e.AddPlayer("p2", "Bob", "rogue-ai"); err != nil {
		t.Fatalf("add p2: %v", err)
	}
	return e, store, sched
}

func startTestEngine(t *testing.T) (*Engine, *memStore, *fakeSched) {
	t.Helper()
	e, store, sched := newTestEngine(t)
	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return e, store, sched
}

func TestAddPlayer_LobbyChecks(t *testing.T) {
	e, _, _ := newTestEngine(t)

	if err := e.AddPlayer("p1", "Alice Again", "rogue-ai"); !errors.Is(err, ErrPlayerExists) {
		t.Fatalf("expected ErrPlayerExists, got %v", err)
	}
	if err := e.AddPlayer("p3", "Carol", "lizard-people"); !errors.Is(err, ErrUnknownFaction) {
		t.Fatalf("expected ErrUnknownFaction, got %v", err)
	}
	_ = e.AddPlayer("p3", "Carol", "hyper-capitalist")
	_ = e.AddPlayer("p4", "Dave", "hyper-capitalist")
	if err := e.AddPlayer("p5", "Eve", "rogue-ai"); !errors.Is(err, ErrMatchFull) {
		t.Fatalf("expected ErrMatchFull, got %v", err)
	}
}

func TestAddPlayer_StartingResourcesFromFaction(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p := e.match.PlayerByID("p1")
	if p.Resources != (game.Resources{Wealth: 80, Attention: 100, Technology: 20}) {
		t.Fatalf("unexpected starting resources %+v", p.Resources)
	}
}

func TestStart_DealsTerritoriesAndEntersMorningBrief(t *testing.T) {
	e, store, sched := startTestEngine(t)

	if e.match.Phase != game.PhaseMorningBrief {
		t.Fatalf("expected morning-brief, got %s", e.match.Phase)
	}
	if e.match.Turn != 1 {
		t.Fatalf("expected turn 1, got %d", e.match.Turn)
	}
	for _, id := range []string{"p1", "p2"} {
		if n := len(e.match.PlayerByID(id).Territories); n != 2 {
			t.Fatalf("expected 2 starting territories for %s, got %d", id, n)
		}
	}
	if !sched.Pending(e.MatchID()) {
		t.Fatalf("phase deadline must be armed after start")
	}
	if store.saves == 0 {
		t.Fatalf("start must persist a snapshot")
	}
}

func TestStart_PlayerCountBounds(t *testing.T) {
	store := &memStore{}
	e := New("Solo", "ABCD1234", false, testRules(), store, newFakeSched(), notify.Discard{})
	_ = e.AddPlayer("p1", "Alice", "influencer-cult")
	if err := e.Start(); !errors.Is(err, ErrPlayerCount) {
		t.Fatalf("expected ErrPlayerCount, got %v", err)
	}
}

func TestSubmit_RejectedOutsideActionPhase(t *testing.T) {
	e, _, _ := startTestEngine(t)
	err := e.Submit("p1", game.PlayerAction{Type: game.ActionInvest, Target: "t1"})
	if !errors.Is(err, ErrNotActionPhase) {
		t.Fatalf("expected ErrNotActionPhase, got %v", err)
	}
}

func TestSubmit_QueuesWithoutDeduction(t *testing.T) {
	e, _, _ := startTestEngine(t)
	if err := e.AdvancePhase(); err != nil {
		t.Fatalf("advance to action phase: %v", err)
	}
	p := e.match.PlayerByID("p1")
	before := p.Resources

	if err := e.Submit("p1", game.PlayerAction{Type: game.ActionInvest, Target: "t1"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(p.Actions) != 1 {
		t.Fatalf("expected 1 queued action, got %d", len(p.Actions))
	}
	if p.Resources != before {
		t.Fatalf("queueing must not deduct resources: %+v vs %+v", p.Resources, before)
	}
	if p.Actions[0].Cost != (game.Resources{Wealth: 30, Attention: 10}) {
		t.Fatalf("expected configured cost recorded, got %+v", p.Actions[0].Cost)
	}
}

func TestSubmit_QuotaEnforced(t *testing.T) {
	e, _, _ := startTestEngine(t)
	_ = e.AdvancePhase()
	for i := 0; i < 3; i++ {
		if err := e.Submit("p1", game.PlayerAction{Type: game.ActionInfluence, Target: "t3"}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	err := e.Submit("p1", game.PlayerAction{Type: game.ActionInfluence, Target: "t3"})
	if !errors.Is(err, ErrActionQuotaReached) {
		t.Fatalf("expected ErrActionQuotaReached, got %v", err)
	}
}

func TestSubmit_SingleAxisInsufficiency(t *testing.T) {
	e, _, _ := startTestEngine(t)
	_ = e.AdvancePhase()
	p := e.match.PlayerByID("p1")
	p.Resources = game.Resources{Wealth: 1000, Attention: 5, Technology: 1000}

	err := e.Submit("p1", game.PlayerAction{Type: game.ActionInvest, Target: "t1"})
	if !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("expected ErrInsufficientResources on attention axis, got %v", err)
	}
}

func TestSubmit_UnknownActionType(t *testing.T) {
	e, _, _ := startTestEngine(t)
	_ = e.AdvancePhase()
	err := e.Submit("p1", game.PlayerAction{Type: "interpretive-dance", Target: "t1"})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestSubmit_UnknownPlayerCheckedFirst(t *testing.T) {
	e, _, _ := startTestEngine(t)
	err := e.Submit("ghost", game.PlayerAction{Type: game.ActionInvest})
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestAdvancePhase_FullCycleIncrementsTurn(t *testing.T) {
	e, _, _ := startTestEngine(t)

	steps := []game.Phase{game.PhaseAction, game.PhaseBreakingNews, game.PhaseMorningBrief}
	for _, want := range steps {
		if err := e.AdvancePhase(); err != nil {
			t.Fatalf("advance to %s: %v", want, err)
		}
		if e.match.Phase != want {
			t.Fatalf("expected phase %s, got %s", want, e.match.Phase)
		}
	}
	if e.match.Turn != 2 {
		t.Fatalf("expected turn 2 after a full cycle, got %d", e.match.Turn)
	}
}

func TestAdvancePhase_GeneratesResourcesOnActionEntry(t *testing.T) {
	e, _, _ := startTestEngine(t)
	p := e.match.PlayerByID("p1")
	before := p.Resources

	if err := e.AdvancePhase(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	// Two owned territories, each generating {10,5,3}.
	want := before
	want.Add(game.Resources{Wealth: 20, Attention: 10, Technology: 6})
	if p.Resources != want {
		t.Fatalf("expected %+v after generation, got %+v", want, p.Resources)
	}
}

func TestAdvancePhase_LobbyNotAdvanceable(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if err := e.AdvancePhase(); !errors.Is(err, ErrNotAdvanceable) {
		t.Fatalf("expected ErrNotAdvanceable in lobby, got %v", err)
	}
}

func TestVictory_TerritorialDomination(t *testing.T) {
	e, _, sched := startTestEngine(t)

	// Hand p1 four of six territories: ceil(6*0.6) = 4.
	p1 := e.match.PlayerByID("p1")
	p2 := e.match.PlayerByID("p2")
	p1.Territories = []string{"t1", "t2", "t3", "t4"}
	p2.Territories = []string{"t5", "t6"}
	for i := range e.match.Territories {
		owner := "p1"
		if i >= 4 {
			owner = "p2"
		}
		e.match.Territories[i].Owner = owner
	}

	_ = e.AdvancePhase() // action
	_ = e.AdvancePhase() // breaking-news
	if err := e.AdvancePhase(); err != nil {
		t.Fatalf("final advance: %v", err)
	}

	if e.match.Phase != game.PhaseFinished {
		t.Fatalf("expected finished, got %s", e.match.Phase)
	}
	if e.match.Winner != "p1" {
		t.Fatalf("expected p1 to win, got %q", e.match.Winner)
	}
	if e.match.Turn != 1 {
		t.Fatalf("turn must not advance past the winning cycle, got %d", e.match.Turn)
	}
	if sched.Pending(e.MatchID()) {
		t.Fatalf("no deadline may stay armed on a finished match")
	}
	if err := e.AdvancePhase(); !errors.Is(err, ErrMatchFinished) {
		t.Fatalf("expected ErrMatchFinished, got %v", err)
	}
}

func TestRemovePlayer_NeutralizesHoldings(t *testing.T) {
	e, _, _ := startTestEngine(t)
	e.match.Territories[2].Influence["p1"] = 30

	if err := e.RemovePlayer("p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if e.match.PlayerByID("p1") != nil {
		t.Fatalf("player should be gone")
	}
	for i := range e.match.Territories {
		tr := &e.match.Territories[i]
		if tr.Owner == "p1" {
			t.Fatalf("territory %s still owned by removed player", tr.ID)
		}
		if _, ok := tr.Influence["p1"]; ok {
			t.Fatalf("influence claim of removed player persists on %s", tr.ID)
		}
	}
}

func TestSnapshot_DeepCopy(t *testing.T) {
	e, _, _ := startTestEngine(t)
	snap, err := e.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	snap.Players[0].Resources.Wealth = -999
	snap.Territories[0].Owner = "intruder"

	if e.match.Players[0].Resources.Wealth == -999 {
		t.Fatalf("snapshot mutation leaked into engine state")
	}
	if e.match.Territories[0].Owner == "intruder" {
		t.Fatalf("snapshot territory mutation leaked into engine state")
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	e, _, _ := startTestEngine(t)
	_ = e.AdvancePhase()
	_ = e.Submit("p1", game.PlayerAction{Type: game.ActionInvest, Target: "t1"})

	snap, err := e.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	restored, err := Restore(snap, testRules(), &memStore{}, newFakeSched(), notify.Discard{})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.match.Phase != game.PhaseAction {
		t.Fatalf("expected restored phase action-phase, got %s", restored.match.Phase)
	}
	if len(restored.match.PlayerByID("p1").Actions) != 1 {
		t.Fatalf("queued actions must survive the round-trip")
	}
	if restored.factions["p2"] == nil {
		t.Fatalf("factions must be rebuilt from player tags")
	}
}

func TestRestore_UnknownFactionTag(t *testing.T) {
	e, _, _ := startTestEngine(t)
	snap, _ := e.Snapshot()
	snap.Players[0].Faction = "lizard-people"
	if _, err := Restore(snap, testRules(), &memStore{}, newFakeSched(), notify.Discard{}); !errors.Is(err, ErrUnknownFaction) {
		t.Fatalf("expected ErrUnknownFaction, got %v", err)
	}
}
