// Package notify carries the engine's outbound notifications. Delivery is
// fire-and-forget: a failing or panicking handler is logged and never
// interrupts the emitting operation.
package notify

import (
	"fmt"

	"github.com/thelaith/satire-empire/internal/logging"
)

// Event types published by the engine.
const (
	EventPlayerJoined = "player-joined"
	EventPlayerLeft   = "player-left"
	EventActionQueued = "action-queued"
	EventPhaseChanged = "phase-changed"
	EventBreakingNews = "breaking-news"
	EventTurnStarted  = "turn-started"
	EventGameStarted  = "game-started"
	EventGameEnded    = "game-ended"
)

// Sink accepts engine notifications.
type Sink interface {
	Publish(eventType string, payload any)
}

// Handler receives one notification.
type Handler func(eventType string, payload any)

// Handlers is a Sink fanning out to a fixed handler list. Each handler is
// isolated: a panic is recovered and logged, and the remaining handlers
// still run.
type Handlers []Handler

func (hs Handlers) Publish(eventType string, payload any) {
	for i, h := range hs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logging.Error("notification handler panicked", fmt.Errorf("%v", r), logging.Fields{"event_type": eventType, "handler": i})
				}
			}()
			h(eventType, payload)
		}()
	}
}

// Discard drops every notification. Useful in tests.
type Discard struct{}

func (Discard) Publish(string, any) {}
