// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"sanctuary_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Explore Domain Events
// =============================================================================

// SpeciesDiscovered is published after an occurrence search resolves the
// candidate species set for a request. Subscribers can use it to warm
// per-species caches before the streaming phase asks for them.
type SpeciesDiscovered struct {
	BaseEvent
	Location string   `json:"location"`
	Species  []string `json:"species"`
}

func (e SpeciesDiscovered) EventName() string { return "explore.species.discovered" }

// ExploreCompleted is published when a full explore request has finished,
// successfully or not.
type ExploreCompleted struct {
	BaseEvent
	Location     string `json:"location"`
	SpeciesCount int    `json:"speciesCount"`
	Failed       bool   `json:"failed"`
}

func (e ExploreCompleted) EventName() string { return "explore.completed" }
