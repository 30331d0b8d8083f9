package events

import "time"

// EventType represents the type of loop event
type EventType int

const (
	// EventResize signals a viewport size change
	// Trigger: rendering adapter on screen resize
	// Consumer: every loop instance (debounced reconciliation) | Payload: *ResizePayload
	EventResize EventType = iota

	// EventPointerMove signals pointer motion over a track region
	// Trigger: rendering adapter mouse handling
	// Consumer: owning instance (overlay target + item metadata) | Payload: *PointerPayload
	EventPointerMove

	// EventPointerLeave signals the pointer leaving the tracked surface
	// Trigger: rendering adapter on terminal focus loss
	// Consumer: owning instance (clears overlay active display) | Payload: none
	EventPointerLeave

	// EventPointerClick signals a primary-button press over a track region
	// Consumer: owning instance's clickthrough handling | Payload: *PointerPayload
	EventPointerClick
)

// ResizePayload carries the new viewport dimensions
type ResizePayload struct {
	Width  float64
	Height float64
}

// PointerPayload carries pointer coordinates and the hovered child index
// Child is -1 when the pointer is over the track but between items
type PointerPayload struct {
	X, Y  float64
	Track int
	Child int
}

// Event is the queued value routed to handlers
type Event struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}
