// Package events defines the platform events emitted on the event bus.
//
// Available event types:
//   - ShipDockedEvent: a ship docked and cranes can start loading
//   - ShipLoadedEvent: the docked ship is full and left
//   - EmergencyEvent: pump emergency engaged or released
//   - DegradationEvent: the arbiter shed load to fit thermal capacity
//   - PumpsChangedEvent: the operator changed the running pump count
//   - CraneBudgetEvent: the operator changed the crane budget
package events

import "time"

// Event is implemented by every platform event.
type Event interface {
	// Type is a short stable identifier used in metric labels and topics.
	Type() string
	Header() Meta
}

// Meta locates an event in a run. Time is the wall time matching the
// simulated clock.
type Meta struct {
	RunID string
	Clock string
	Hour  int
	Time  time.Time
}

// Header returns the event metadata.
func (m Meta) Header() Meta { return m }
