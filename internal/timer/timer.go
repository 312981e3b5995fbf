// Package timer provides the single-shot phase deadline scheduler. At most
// one deadline is pending per match: arming a new one cancels any previous
// pending deadline for that match.
package timer

import (
	"sync"
	"time"
)

// Scheduler arms and cancels per-match deadline callbacks.
type Scheduler interface {
	// Arm schedules fn to run after d, replacing any pending deadline for
	// the match.
	Arm(matchID string, d time.Duration, fn func())
	// Cancel drops the pending deadline for the match, if any.
	Cancel(matchID string)
	// Pending reports whether a deadline is currently armed for the match.
	Pending(matchID string) bool
}

// Timers is the time.AfterFunc-backed Scheduler used in production.
type Timers struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
}

func New() *Timers {
	return &Timers{pending: make(map[string]*time.Timer)}
}

func (t *Timers) Arm(matchID string, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.pending[matchID]; ok {
		prev.Stop()
	}
	t.pending[matchID] = time.AfterFunc(d, func() {
		t.mu.Lock()
		delete(t.pending, matchID)
		t.mu.Unlock()
		fn()
	})
}

func (t *Timers) Cancel(matchID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.pending[matchID]; ok {
		prev.Stop()
		delete(t.pending, matchID)
	}
}

// Pending reports whether a deadline is currently armed for the match.
func (t *Timers) Pending(matchID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[matchID]
	return ok
}
