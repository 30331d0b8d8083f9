package engine

// PointerMoved contributes pointer focus to the shared overlay: the
// target position plus the hovered item's display text and whether a
// click would go anywhere. Clone children resolve to their origin item
func (e *Instance) PointerMoved(x, y float64, child int) {
	e.mu.Lock()
	reg := e.overlayReg
	destroyed := e.phase == PhaseDestroyed
	item, ok := e.seq.Resolve(child)
	e.mu.Unlock()
	if reg == nil || destroyed {
		return
	}

	reg.SetTarget(x, y)

	if !ok {
		return
	}
	linkable := item.Linkable() && e.settings.AllowClickthrough
	reg.Show(item.Title, linkable)
}

// PointerLeft clears the overlay's active display without deregistering;
// the element keeps following the last target until another instance
// takes over
func (e *Instance) PointerLeft() {
	e.mu.Lock()
	reg := e.overlayReg
	destroyed := e.phase == PhaseDestroyed
	e.mu.Unlock()
	if reg == nil || destroyed {
		return
	}
	reg.ClearActive()
}
