package engine

import "github.com/lixenwraith/marquee/vmath"

const (
	// CoverageFactor is the required rendered width as a multiple of the
	// viewport width; three keeps the loop seamless at any scroll offset
	CoverageFactor = 3

	// MinDuplications is the duplication floor applied even to very wide
	// tracks
	MinDuplications = 2

	// MaxMeasureAttempts bounds the zero-width retry loop
	MaxMeasureAttempts = 100
)

// duplications returns how many full base-sequence copies to append so
// that total rendered width reaches CoverageFactor x viewport width
func duplications(viewportWidth, trackWidth float64) int {
	n := vmath.CeilDiv(viewportWidth*CoverageFactor, trackWidth)
	if n < MinDuplications {
		n = MinDuplications
	}
	return n
}

// deferOrFailLocked handles a zero-width measurement: the track is hidden
// or not yet laid out, so the pass is retried on the next frame boundary
// up to MaxMeasureAttempts, then abandoned; caller holds e.mu
func (e *Instance) deferOrFailLocked() error {
	if e.retryCount >= MaxMeasureAttempts {
		e.failMeasure.Add(1)
		e.failLocked()
		return ErrMeasurementUnavailable
	}
	e.retryCount++
	e.measureRetries.Add(1)
	e.retryHandle = e.frames.Schedule(e.resumeRetry)
	return nil
}

// resumeRetry re-enters the pipeline from a scheduled measurement retry
func (e *Instance) resumeRetry() {
	e.mu.Lock()
	defer e.mu.Unlock()
	// A destroy or a superseding reconciliation ends the retry chain
	if e.phase != PhaseMeasuring {
		return
	}
	e.retryHandle = nil
	e.continueLocked()
}
