package engine

import (
	"errors"

	"github.com/lixenwraith/marquee/timing"
)

// Build failures are non-throwing: each is reported through the status
// registry and handled by early return, leaving the previous safe state
// (or the static pre-animation state) intact
var (
	// ErrMissingSource means no items were available at build time
	// Fatal to the instance; it renders nothing and never animates
	ErrMissingSource = errors.New("engine: no items available")

	// ErrMeasurementUnavailable means the track width stayed zero past
	// the retry bound; fatal to that build attempt only
	ErrMeasurementUnavailable = errors.New("engine: track width unavailable")

	// ErrZeroDistance mirrors the timing calculator's fatal condition
	ErrZeroDistance = timing.ErrZeroDistance

	// ErrAlreadyStarted guards against a second Start on one instance
	ErrAlreadyStarted = errors.New("engine: instance already started")
)
