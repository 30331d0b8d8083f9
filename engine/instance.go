// Package engine orchestrates one seamless loop: it builds the base
// sequence, waits for visual readiness, duplicates content for coverage,
// derives the animation parameters, and reconciles on viewport resize.
// Rendering itself stays behind the scene.Track boundary
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/marquee/core"
	"github.com/lixenwraith/marquee/overlay"
	"github.com/lixenwraith/marquee/scene"
	"github.com/lixenwraith/marquee/sched"
	"github.com/lixenwraith/marquee/status"
	"github.com/lixenwraith/marquee/timing"
)

// Phase is the instance lifecycle state
// Destroyed is terminal and irreversible
type Phase int32

const (
	PhaseUninitialized Phase = iota
	PhaseMeasuring
	PhaseAnimating
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseMeasuring:
		return "measuring"
	case PhaseAnimating:
		return "animating"
	case PhaseDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// ResizeDebounce is the settling window for resize reconciliation,
// measured from the most recent notification
const ResizeDebounce = 250 * time.Millisecond

// Animation carries the two parameters published to the rendering layer,
// intended to parametrize a declarative repeating translation
type Animation struct {
	// TranslateX is the negated scroll distance in pixels
	TranslateX float64

	// Duration is the cycle time in seconds
	Duration float64
}

// Config wires one instance to its collaborators
type Config struct {
	Items    []core.Item
	Settings core.Settings

	Track    scene.Track
	Viewport scene.Viewport
	Frames   sched.FrameSource
	Clock    sched.Scheduler

	// Overlay enables the shared pointer overlay feature when non-nil;
	// the instance registers on creation and deregisters on destroy
	Overlay *overlay.Registry

	// Publish receives the animation parameters after each successful
	// pipeline pass
	Publish func(Animation)

	// Status receives diagnostics; a private registry is used when nil
	Status *status.Registry
}

// Instance is one seamless loop engine
// It exclusively owns its track, base sequence, and derived state;
// siblings share nothing but the overlay registry
type Instance struct {
	mu sync.Mutex

	seq      *core.Sequence
	settings core.Settings
	track    scene.Track
	viewport scene.Viewport
	frames   sched.FrameSource
	publish  func(Animation)

	phase     Phase
	readyDone atomic.Bool

	params    timing.Params
	hasParams bool

	debounce    *sched.Debouncer
	retryHandle sched.Handle
	retryCount  int

	overlayReg *overlay.Registry
	ticket     *overlay.Ticket

	buildsStarted   *atomic.Int64
	buildsCompleted *atomic.Int64
	measureRetries  *atomic.Int64
	resizeRebuilds  *atomic.Int64
	failMeasure     *atomic.Int64
	failZero        *atomic.Int64
	statDistance    *status.AtomicFloat
	statDuration    *status.AtomicFloat
}

// New creates an instance over the given items and collaborators
// Returns ErrMissingSource when the item list is empty
func New(cfg Config) (*Instance, error) {
	st := cfg.Status
	if st == nil {
		st = status.NewRegistry()
	}
	if len(cfg.Items) == 0 {
		st.Ints.Get(status.KeyFailMissing).Add(1)
		return nil, ErrMissingSource
	}

	e := &Instance{
		seq:      core.NewSequence(cfg.Items),
		settings: cfg.Settings.Normalize(),
		track:    cfg.Track,
		viewport: cfg.Viewport,
		frames:   cfg.Frames,
		publish:  cfg.Publish,
		debounce: sched.NewDebouncer(ResizeDebounce, cfg.Clock),

		buildsStarted:   st.Ints.Get(status.KeyBuildsStarted),
		buildsCompleted: st.Ints.Get(status.KeyBuildsCompleted),
		measureRetries:  st.Ints.Get(status.KeyMeasureRetries),
		resizeRebuilds:  st.Ints.Get(status.KeyResizeRebuilds),
		failMeasure:     st.Ints.Get(status.KeyFailMeasure),
		failZero:        st.Ints.Get(status.KeyFailZero),
		statDistance:    st.Floats.Get(status.KeyScrollDistance),
		statDuration:    st.Floats.Get(status.KeyDuration),
	}

	if cfg.Overlay != nil {
		e.overlayReg = cfg.Overlay
		e.ticket = cfg.Overlay.Acquire()
	}
	return e, nil
}

// Phase returns the current lifecycle phase
func (e *Instance) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Params returns the last successfully computed parameters
func (e *Instance) Params() (timing.Params, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params, e.hasParams
}

// Settings returns the normalized instance settings
func (e *Instance) Settings() core.Settings {
	return e.settings
}

// Resolve maps a rendered child index back to its origin item
// The handle arena is rebuilt during reconciliation, so lookups are
// serialized with the build pipeline rather than exposing the arena
func (e *Instance) Resolve(child int) (core.Item, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq.Resolve(child)
}

// Destroy terminates the instance: pending debounce and retry work is
// cancelled and the overlay registration released before the instance
// counts as destroyed. All later calls are no-ops
func (e *Instance) Destroy() {
	e.mu.Lock()
	if e.phase == PhaseDestroyed {
		e.mu.Unlock()
		return
	}
	e.phase = PhaseDestroyed
	e.debounce.Cancel()
	if e.retryHandle != nil {
		e.retryHandle.Cancel()
		e.retryHandle = nil
	}
	ticket := e.ticket
	e.ticket = nil
	e.mu.Unlock()

	if ticket != nil {
		ticket.Release()
	}
}
