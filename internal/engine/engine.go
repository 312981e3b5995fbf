package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thelaith/satire-empire/internal/config"
	"github.com/thelaith/satire-empire/internal/faction"
	"github.com/thelaith/satire-empire/internal/game"
	"github.com/thelaith/satire-empire/internal/logging"
	"github.com/thelaith/satire-empire/internal/notify"
	"github.com/thelaith/satire-empire/internal/timer"
)

// Validation errors reported synchronously to the caller. They are never
// hard faults and never reach the queue.
var (
	ErrPlayerNotFound        = errors.New("player not found")
	ErrNotActionPhase        = errors.New("not in action phase")
	ErrActionQuotaReached    = errors.New("maximum actions per turn reached")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrUnknownAction         = errors.New("unknown action type")
)

// Precondition errors indicating caller misuse rather than runtime failure.
var (
	ErrNotInLobby     = errors.New("match is not in lobby")
	ErrMatchFull      = errors.New("match is full")
	ErrPlayerExists   = errors.New("player id already in match")
	ErrPlayerCount    = errors.New("player count outside allowed range")
	ErrMatchFinished  = errors.New("match is finished")
	ErrNotAdvanceable = errors.New("phase cannot be advanced")
	ErrUnknownFaction = errors.New("unknown faction")
)

// Store persists a match snapshot. The engine calls Save after every
// durable state mutation.
type Store interface {
	Save(m *game.Match) error
}

// Engine owns one match for its lifetime. All public operations serialize
// on the internal mutex (single-writer discipline), so callers observe
// either pre- or fully-post-resolution state, never a partial one.
type Engine struct {
	mu       sync.Mutex
	match    *game.Match
	rules    *config.Rules
	factions map[string]faction.Faction

	store Store
	sched timer.Scheduler
	sink  notify.Sink

	now func() time.Time
}

// New creates an engine around a fresh match in the lobby phase.
func New(name string, joinCode string, private bool, rules *config.Rules, store Store, sched timer.Scheduler, sink notify.Sink) *Engine {
	now := time.Now()
	territories := make([]game.Territory, len(rules.Territories))
	for i, t := range rules.Territories {
		territories[i] = t
		territories[i].Influence = map[string]int{}
	}
	m := &game.Match{
		ID:          uuid.NewString(),
		Version:     "1.0.0",
		Name:        name,
		JoinCode:    joinCode,
		Private:     private,
		Turn:        0,
		Phase:       game.PhaseLobby,
		Territories: territories,
		Metadata: game.Metadata{
			CreatedAt:  now,
			UpdatedAt:  now,
			MaxPlayers: rules.Limits.MaxPlayers,
			Mode:       "standard",
		},
	}
	return &Engine{
		match:    m,
		rules:    rules,
		factions: make(map[string]faction.Faction),
		store:    store,
		sched:    sched,
		sink:     sink,
		now:      time.Now,
	}
}

// Restore rebuilds an engine around a previously serialized match. Faction
// objects are reconstructed from the players' faction tags. The phase timer
// is not re-armed; the caller decides whether to arm or advance.
func Restore(m *game.Match, rules *config.Rules, store Store, sched timer.Scheduler, sink notify.Sink) (*Engine, error) {
	factions := make(map[string]faction.Faction, len(m.Players))
	for i := range m.Players {
		f, err := faction.New(m.Players[i].Faction)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFaction, m.Players[i].Faction)
		}
		factions[m.Players[i].ID] = f
	}
	return &Engine{
		match:    m,
		rules:    rules,
		factions: factions,
		store:    store,
		sched:    sched,
		sink:     sink,
		now:      time.Now,
	}, nil
}

// MatchID returns the engine's match id.
func (e *Engine) MatchID() string {
	return e.match.ID
}

// Snapshot returns a deep copy of the match safe for concurrent readers.
func (e *Engine) Snapshot() (*game.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, err := json.Marshal(e.match)
	if err != nil {
		return nil, err
	}
	var out game.Match
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddPlayer joins a player to a lobby-phase match.
func (e *Engine) AddPlayer(id, name, factionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.match.Phase != game.PhaseLobby {
		return ErrNotInLobby
	}
	if len(e.match.Players) >= e.rules.Limits.MaxPlayers {
		return ErrMatchFull
	}
	if e.match.PlayerByID(id) != nil {
		return ErrPlayerExists
	}
	f, err := faction.New(factionID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownFaction, factionID)
	}

	e.match.Players = append(e.match.Players, game.Player{
		ID:              id,
		Name:            name,
		Faction:         factionID,
		Resources:       f.Definition().StartingResources,
		Territories:     []string{},
		Actions:         []game.QueuedAction{},
		Connected:       true,
		LastActionAt:    e.now(),
		AbilityLastUsed: map[string]time.Time{},
	})
	e.factions[id] = f
	e.touch()
	e.sink.Publish(notify.EventPlayerJoined, map[string]any{"match_id": e.match.ID, "player_id": id, "name": name, "faction": factionID})
	return e.persist()
}

// RemovePlayer drops a player. Their territories return to neutral and
// their influence claims are erased so no dangling player id remains.
func (e *Engine) RemovePlayer(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.match.Players {
		if e.match.Players[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrPlayerNotFound
	}
	name := e.match.Players[idx].Name
	e.match.Players = append(e.match.Players[:idx], e.match.Players[idx+1:]...)
	delete(e.factions, id)

	for i := range e.match.Territories {
		t := &e.match.Territories[i]
		if t.Owner == id {
			t.Owner = ""
			t.Influence = map[string]int{}
		} else {
			delete(t.Influence, id)
		}
	}
	e.touch()
	e.sink.Publish(notify.EventPlayerLeft, map[string]any{"match_id": e.match.ID, "player_id": id, "name": name})
	return e.persist()
}

// Start transitions lobby -> morning-brief and deals starting territories.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.match.Phase != game.PhaseLobby {
		return ErrNotInLobby
	}
	if len(e.match.Players) < e.rules.Limits.MinPlayers || len(e.match.Players) > e.rules.Limits.MaxPlayers {
		return ErrPlayerCount
	}

	e.dealStartingTerritories()
	e.match.Turn = 1
	e.enterPhase(game.PhaseMorningBrief, e.rules.Timing.MorningBrief())
	e.sink.Publish(notify.EventGameStarted, map[string]any{"match_id": e.match.ID, "players": len(e.match.Players)})
	return e.persist()
}

// Submit validates a player's intended action and appends it to the
// player's queue. Preconditions are checked in order; the first failure
// wins. Resources are not deducted at queue time — deduction happens only
// at resolution, clamped at zero.
func (e *Engine) Submit(playerID string, action game.PlayerAction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	player := e.match.PlayerByID(playerID)
	if player == nil {
		return ErrPlayerNotFound
	}
	if e.match.Phase != game.PhaseAction {
		return ErrNotActionPhase
	}
	if len(player.Actions) >= e.rules.Limits.MaxActionsPerTurn {
		return ErrActionQuotaReached
	}
	cost, err := e.effectiveCost(action)
	if err != nil {
		return err
	}
	if cost.Exceeds(player.Resources) {
		return ErrInsufficientResources
	}

	queued := game.QueuedAction{
		ID:          uuid.NewString(),
		PlayerID:    playerID,
		Type:        action.Type,
		Target:      action.Target,
		Cost:        cost,
		SubmittedAt: e.now(),
	}
	player.Actions = append(player.Actions, queued)
	player.LastActionAt = queued.SubmittedAt
	e.touch()
	e.sink.Publish(notify.EventActionQueued, map[string]any{"match_id": e.match.ID, "player_id": playerID, "action": queued})
	return e.persist()
}

// effectiveCost uses the caller's declared cost when present, falling back
// to the configured table for the action type.
func (e *Engine) effectiveCost(action game.PlayerAction) (game.Resources, error) {
	if action.Cost != (game.Resources{}) {
		return action.Cost, nil
	}
	cost, ok := e.rules.CostFor(action.Type)
	if !ok {
		return game.Resources{}, fmt.Errorf("%w: %s", ErrUnknownAction, action.Type)
	}
	return cost, nil
}

// AdvancePhase moves the match along the fixed phase cycle. It is invoked
// by the armed deadline or by a forwarded request; both paths are
// equivalent and serialized.
func (e *Engine) AdvancePhase() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.match.Phase {
	case game.PhaseMorningBrief:
		e.startActionPhase()
	case game.PhaseAction:
		e.startBreakingNews()
	case game.PhaseBreakingNews:
		e.startNextTurn()
	case game.PhaseFinished:
		return ErrMatchFinished
	default:
		return fmt.Errorf("%w: %s", ErrNotAdvanceable, e.match.Phase)
	}
	return e.persist()
}

func (e *Engine) startActionPhase() {
	e.generateResources()
	e.enterPhase(game.PhaseAction, e.rules.Timing.ActionPhase())
}

func (e *Engine) startBreakingNews() {
	rc := newResolutionContext(e)
	resolutions := rc.resolveAll()
	e.enterPhase(game.PhaseBreakingNews, e.rules.Timing.BreakingNews())
	e.sink.Publish(notify.EventBreakingNews, map[string]any{
		"match_id":    e.match.ID,
		"headlines":   rc.headlines,
		"events":      e.match.Events,
		"resolutions": resolutions,
	})
}

func (e *Engine) startNextTurn() {
	// Victory is evaluated before the new turn number is committed.
	if winner := e.checkVictory(); winner != "" {
		e.finish(winner)
		return
	}
	e.match.Turn++
	e.enterPhase(game.PhaseMorningBrief, e.rules.Timing.MorningBrief())
	e.sink.Publish(notify.EventTurnStarted, map[string]any{"match_id": e.match.ID, "turn": e.match.Turn})
}

// enterPhase records the transition and re-arms the single per-match
// deadline; arming cancels any previous pending deadline.
func (e *Engine) enterPhase(p game.Phase, d time.Duration) {
	e.match.Phase = p
	e.match.PhaseEndsAt = e.now().Add(d)
	e.touch()
	matchID := e.match.ID
	e.sched.Arm(matchID, d, func() {
		if err := e.AdvancePhase(); err != nil {
			logging.Error("phase deadline advance failed", err, logging.Fields{"match_id": matchID})
		}
	})
	e.sink.Publish(notify.EventPhaseChanged, map[string]any{
		"match_id":       e.match.ID,
		"phase":          p,
		"time_remaining": int(d.Seconds()),
	})
}

func (e *Engine) finish(winner string) {
	e.match.Phase = game.PhaseFinished
	e.match.Winner = winner
	e.match.PhaseEndsAt = time.Time{}
	e.touch()
	e.sched.Cancel(e.match.ID)
	e.sink.Publish(notify.EventGameEnded, map[string]any{"match_id": e.match.ID, "winner": winner})
}

// generateResources credits every player with the generation triples of
// the territories they own. Runs on morning-brief -> action-phase.
func (e *Engine) generateResources() {
	for i := range e.match.Players {
		p := &e.match.Players[i]
		var total game.Resources
		for _, tid := range p.Territories {
			if t := e.match.TerritoryByID(tid); t != nil {
				total.Add(t.Generation)
			}
		}
		p.Resources.Add(total)
	}
}

func (e *Engine) dealStartingTerritories() {
	neutral := make([]*game.Territory, 0, len(e.match.Territories))
	for i := range e.match.Territories {
		if e.match.Territories[i].Owner == "" {
			neutral = append(neutral, &e.match.Territories[i])
		}
	}
	per := e.rules.Balance.StartingTerritoriesPerPlayer
	if n := len(neutral) / len(e.match.Players); n < per {
		per = n
	}
	for pi := range e.match.Players {
		p := &e.match.Players[pi]
		for i := 0; i < per; i++ {
			t := neutral[pi*per+i]
			t.Owner = p.ID
			p.Territories = append(p.Territories, t.ID)
		}
	}
}

func (e *Engine) touch() {
	e.match.Metadata.UpdatedAt = e.now()
}

func (e *Engine) persist() error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(e.match); err != nil {
		logging.Error("failed to persist match snapshot", err, logging.Fields{"match_id": e.match.ID})
		return err
	}
	return nil
}
