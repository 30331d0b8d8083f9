package engine

import (
	"github.com/lixenwraith/marquee/scene"
	"github.com/lixenwraith/marquee/timing"
)

// Start renders the base sequence, joins the visual-readiness barrier,
// and runs the first duplication and timing pass. The barrier ordering is
// mandatory: no measurement happens before every item has settled
//
// A nil return does not guarantee the instance is animating yet - a
// hidden track defers completion to the bounded frame retry
func (e *Instance) Start() error {
	e.mu.Lock()
	if e.phase != PhaseUninitialized {
		e.mu.Unlock()
		return ErrAlreadyStarted
	}
	e.phase = PhaseMeasuring
	settlements := e.track.RenderBase(e.seq.Items())
	e.mu.Unlock()

	joinSettlements(settlements)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == PhaseDestroyed {
		return nil
	}
	e.readyDone.Store(true)
	e.retryCount = 0
	return e.buildLocked()
}

// joinSettlements blocks until every item settles
// Load failures count as settled; the barrier never distinguishes
func joinSettlements(settlements []scene.Settlement) {
	for _, s := range settlements {
		<-s
	}
}

// buildLocked starts one full pipeline pass; caller holds e.mu
func (e *Instance) buildLocked() error {
	e.buildsStarted.Add(1)
	return e.continueLocked()
}

// continueLocked runs the duplication and timing steps, possibly resumed
// from a measurement retry; caller holds e.mu
func (e *Instance) continueLocked() error {
	// Prior clones must be gone before any re-duplication pass
	e.track.StripClones()
	e.seq.StripClones()

	trackWidth := e.track.Width()
	if trackWidth == 0 {
		return e.deferOrFailLocked()
	}
	e.retryCount = 0

	viewportWidth, _ := e.viewport.Size()
	n := duplications(viewportWidth, trackWidth)
	e.track.AppendCopies(n)
	for i := 0; i < n; i++ {
		e.seq.AppendCopy()
	}

	params, err := timing.Compute(timing.Input{
		ItemWidths:    e.track.OriginalWidths(),
		Gap:           e.track.Gap(),
		SpeedMobile:   e.settings.SpeedMobile,
		SpeedDesktop:  e.settings.SpeedDesktop,
		ViewportWidth: viewportWidth,
	})
	if err != nil {
		e.failZero.Add(1)
		e.failLocked()
		return err
	}

	e.params = params
	e.hasParams = true
	e.statDistance.Set(params.ScrollDistance)
	e.statDuration.Set(params.Duration)

	if e.publish != nil {
		e.publish(Animation{
			TranslateX: -params.ScrollDistance,
			Duration:   params.Duration,
		})
	}
	e.track.MarkInitialized(true)
	e.phase = PhaseAnimating
	e.buildsCompleted.Add(1)
	return nil
}

// failLocked abandons the current build attempt, leaving the track
// un-initialized; a later resize reconciliation is the only recovery path
func (e *Instance) failLocked() {
	e.track.MarkInitialized(false)
	e.phase = PhaseUninitialized
}
