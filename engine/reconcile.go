package engine

// NotifyResize records one viewport resize notification
// Notifications arrive at an unbounded rate; only the final one in a
// settling window triggers work. No-op until the first readiness barrier
// has completed, so reconciliation never races the initial build
func (e *Instance) NotifyResize() {
	if !e.readyDone.Load() {
		return
	}
	e.mu.Lock()
	destroyed := e.phase == PhaseDestroyed
	e.mu.Unlock()
	if destroyed {
		return
	}
	e.debounce.Trigger(e.reconcile)
}

// reconcile discards all derived state and reruns the pipeline from the
// authoritative base sequence: clear, re-render, barrier, duplicate, time.
// Failure of any sub-step leaves the track un-initialized rather than
// partially rebuilt
func (e *Instance) reconcile() {
	e.mu.Lock()
	if e.phase == PhaseDestroyed {
		e.mu.Unlock()
		return
	}
	if e.retryHandle != nil {
		e.retryHandle.Cancel()
		e.retryHandle = nil
	}
	e.retryCount = 0
	e.resizeRebuilds.Add(1)
	e.phase = PhaseMeasuring

	e.seq.StripClones()
	e.track.MarkInitialized(false)
	e.track.Clear()
	settlements := e.track.RenderBase(e.seq.Items())
	e.mu.Unlock()

	joinSettlements(settlements)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == PhaseDestroyed {
		return
	}
	e.buildLocked()
}
