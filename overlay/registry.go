// Package overlay manages the single pointer-following annotation shared
// by every loop instance on a page. It is an explicit create-on-first-
// acquire / destroy-on-last-release resource, not an implicit global
package overlay

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/marquee/scene"
	"github.com/lixenwraith/marquee/sched"
	"github.com/lixenwraith/marquee/status"
	"github.com/lixenwraith/marquee/vmath"
)

const (
	// LerpFactor is the per-axis fraction of remaining distance covered
	// each frame; yields smooth following rather than snapping
	LerpFactor = 0.1

	// RightOffset places the element to the pointer's right by default
	RightOffset = 20.0

	// LeftOffset mirrors the gap when the edge rule flips sides
	LeftOffset = 20.0
)

// Registry owns the shared overlay lifetime by reference count
// First acquisition creates the element and starts the frame loop; last
// release stops the loop and removes it. No state survives a full teardown
type Registry struct {
	frames   sched.FrameSource
	viewport scene.Viewport
	newView  func() View

	mu    sync.Mutex
	state *overlayState
	refs  int

	refGauge   *atomic.Int64
	frameCount *atomic.Int64
}

type overlayState struct {
	view    View
	current vmath.Vec2
	target  vmath.Vec2
	handle  sched.Handle
	stopped bool
}

// Ticket is one instance's registration; Release exactly once per ticket
type Ticket struct {
	reg      *Registry
	released atomic.Bool
}

// NewRegistry creates a registry over the given frame source and viewport
// newView constructs the rendered element on each fresh acquisition
func NewRegistry(frames sched.FrameSource, viewport scene.Viewport, newView func() View, st *status.Registry) *Registry {
	r := &Registry{
		frames:   frames,
		viewport: viewport,
		newView:  newView,
	}
	if st != nil {
		r.refGauge = st.Ints.Get(status.KeyOverlayRefs)
		r.frameCount = st.Ints.Get(status.KeyOverlayFrames)
	}
	return r
}

// Acquire registers one instance, creating the overlay on the first call
// The fresh element starts at the left edge, vertically mid-viewport
func (r *Registry) Acquire() *Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refs++
	if r.refGauge != nil {
		r.refGauge.Store(int64(r.refs))
	}

	if r.state == nil {
		_, h := r.viewport.Size()
		start := vmath.Vec2{X: 0, Y: h / 2}
		st := &overlayState{
			view:    r.newView(),
			current: start,
			target:  start,
		}
		r.state = st
		st.handle = r.frames.Schedule(func() { r.step(st) })
	}
	return &Ticket{reg: r}
}

// Release deregisters the ticket's instance; the last release destroys
// the overlay entirely. Safe to call more than once
func (t *Ticket) Release() {
	if !t.released.CompareAndSwap(false, true) {
		return
	}
	t.reg.release()
}

func (r *Registry) release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs == 0 {
		return
	}
	r.refs--
	if r.refGauge != nil {
		r.refGauge.Store(int64(r.refs))
	}
	if r.refs > 0 {
		return
	}

	st := r.state
	r.state = nil
	st.stopped = true
	if st.handle != nil {
		st.handle.Cancel()
	}
	st.view.Remove()
}

// Refs returns the active registrant count
func (r *Registry) Refs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs
}

// Active reports whether the overlay element currently exists
func (r *Registry) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state != nil
}

// step advances the interpolation one frame and reschedules itself
func (r *Registry) step(st *overlayState) {
	r.mu.Lock()
	if st.stopped || r.state != st {
		r.mu.Unlock()
		return
	}

	st.current = vmath.ApproachVec(st.current, st.target, LerpFactor)

	vw, _ := r.viewport.Size()
	x, flipped := Place(st.current.X, st.view.Width(), vw)
	y := st.current.Y
	view := st.view

	st.handle = r.frames.Schedule(func() { r.step(st) })
	if r.frameCount != nil {
		r.frameCount.Add(1)
	}
	r.mu.Unlock()

	view.Apply(x, y, flipped)
}

// Place computes the horizontal draw position for one frame
// Pure function of the frame's measurements, no hysteresis: flips to the
// pointer's left only while the right side would overflow the viewport
func Place(pointerX, overlayWidth, viewportWidth float64) (x float64, flipped bool) {
	if pointerX+RightOffset+overlayWidth > viewportWidth {
		return pointerX - LeftOffset - overlayWidth, true
	}
	return pointerX + RightOffset, false
}

// SetTarget updates the position the overlay eases toward
// Writes from different instances land in event-arrival order
func (r *Registry) SetTarget(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return
	}
	r.state.target = vmath.Vec2{X: x, Y: y}
}

// Show displays the hovered item's text and link affordance
func (r *Registry) Show(text string, linkable bool) {
	r.mu.Lock()
	st := r.state
	r.mu.Unlock()
	if st == nil {
		return
	}
	st.view.SetContent(text, linkable)
}

// ClearActive hides the active display without deregistering anyone
func (r *Registry) ClearActive() {
	r.mu.Lock()
	st := r.state
	r.mu.Unlock()
	if st == nil {
		return
	}
	st.view.ClearActive()
}

// Position returns the current interpolated position, for tests
func (r *Registry) Position() (vmath.Vec2, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return vmath.Vec2{}, false
	}
	return r.state.current, true
}
