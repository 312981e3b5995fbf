package service

import (
	"errors"
	"sync"
	"time"

	"github.com/thelaith/satire-empire/internal/config"
	"github.com/thelaith/satire-empire/internal/engine"
	"github.com/thelaith/satire-empire/internal/game"
	"github.com/thelaith/satire-empire/internal/logging"
	"github.com/thelaith/satire-empire/internal/notify"
	"github.com/thelaith/satire-empire/internal/storage"
	"github.com/thelaith/satire-empire/internal/timer"
)

// Structural errors: caller misuse, not runtime I/O failure.
var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrEngineNotInitialized = errors.New("engine not initialized")
)

// repoStore adapts the repository to the engine's Store interface.
type repoStore struct {
	repo storage.Repository
}

func (s repoStore) Save(m *game.Match) error { return s.repo.SaveMatch(m) }

// Manager owns the live engine registry. One engine per match; engines are
// lazily restored from stored snapshots after a process restart.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*engine.Engine

	repo  storage.Repository
	rules *config.Rules
	sched timer.Scheduler
	sink  notify.Sink
}

func NewManager(repo storage.Repository, rules *config.Rules, sched timer.Scheduler, sink notify.Sink) *Manager {
	return &Manager{
		engines: make(map[string]*engine.Engine),
		repo:    repo,
		rules:   rules,
		sched:   sched,
		sink:    sink,
	}
}

// CreateMatch builds a new lobby-phase match with the host as the first
// player and persists the initial snapshot.
func (m *Manager) CreateMatch(name, joinCode string, private bool, hostID, hostName, factionID string) (*game.Match, error) {
	if m == nil || m.rules == nil {
		return nil, ErrEngineNotInitialized
	}
	eng := engine.New(name, joinCode, private, m.rules, repoStore{m.repo}, m.sched, m.sink)
	if err := eng.AddPlayer(hostID, hostName, factionID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.engines[eng.MatchID()] = eng
	m.mu.Unlock()
	return eng.Snapshot()
}

// engineFor returns the live engine for the match, restoring one from the
// stored snapshot if the process has not seen the match yet.
func (m *Manager) engineFor(matchID string) (*engine.Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if eng, ok := m.engines[matchID]; ok {
		return eng, nil
	}
	snap, err := m.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, ErrMatchNotFound
	}
	eng, err := engine.Restore(snap, m.rules, repoStore{m.repo}, m.sched, m.sink)
	if err != nil {
		return nil, err
	}
	m.engines[matchID] = eng
	return eng, nil
}

// ResolveJoinCode maps a join code to a match id.
func (m *Manager) ResolveJoinCode(code string) (string, error) {
	snap, err := m.repo.FindMatchByJoinCode(code)
	if err != nil {
		return "", ErrMatchNotFound
	}
	return snap.ID, nil
}

func (m *Manager) JoinMatch(matchID, playerID, name, factionID string) error {
	eng, err := m.engineFor(matchID)
	if err != nil {
		return err
	}
	return eng.AddPlayer(playerID, name, factionID)
}

func (m *Manager) LeaveMatch(matchID, playerID string) error {
	eng, err := m.engineFor(matchID)
	if err != nil {
		return err
	}
	return eng.RemovePlayer(playerID)
}

func (m *Manager) StartMatch(matchID string) error {
	eng, err := m.engineFor(matchID)
	if err != nil {
		return err
	}
	return eng.Start()
}

func (m *Manager) SubmitAction(matchID, playerID string, action game.PlayerAction) error {
	eng, err := m.engineFor(matchID)
	if err != nil {
		return err
	}
	return eng.Submit(playerID, action)
}

func (m *Manager) AdvancePhase(matchID string) error {
	eng, err := m.engineFor(matchID)
	if err != nil {
		return err
	}
	return eng.AdvancePhase()
}

// GetMatch returns a read-only deep copy of the match state.
func (m *Manager) GetMatch(matchID string) (*game.Match, error) {
	eng, err := m.engineFor(matchID)
	if err != nil {
		return nil, err
	}
	return eng.Snapshot()
}

// AdvanceOverdue advances matches whose phase deadline passed without the
// in-process timer firing (typically after a restart). The engine re-arms
// its own deadline on the resulting transition.
func (m *Manager) AdvanceOverdue(now time.Time) {
	ids, err := m.repo.FindDueMatchIDs(now)
	if err != nil {
		logging.Error("overdue scan failed", err, nil)
		return
	}
	for _, id := range ids {
		// A live armed deadline will advance the match itself.
		if m.sched.Pending(id) {
			continue
		}
		eng, err := m.engineFor(id)
		if err != nil {
			continue
		}
		snap, err := eng.Snapshot()
		if err != nil {
			continue
		}
		if snap.Phase == game.PhaseLobby || snap.Phase == game.PhaseFinished {
			continue
		}
		if snap.PhaseEndsAt.IsZero() || snap.PhaseEndsAt.After(now) {
			continue
		}
		logging.Info("advancing overdue match", logging.Fields{"match_id": id, "phase": string(snap.Phase)})
		if err := eng.AdvancePhase(); err != nil {
			logging.Error("failed to advance overdue match", err, logging.Fields{"match_id": id})
		}
	}
}
