package render

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/marquee/engine"
	"github.com/lixenwraith/marquee/sched"
)

// TrackAnim binds one track to its published animation parameters and
// turns elapsed time into the repeating translation the engine computed
type TrackAnim struct {
	mu sync.Mutex

	track *TerminalTrack
	clock *sched.PausableClock

	reverse     bool
	stopOnHover bool

	anim    engine.Animation
	hasAnim bool
}

// NewTrackAnim creates the animation state for one track
func NewTrackAnim(track *TerminalTrack, provider sched.TimeProvider, reverse, stopOnHover bool) *TrackAnim {
	return &TrackAnim{
		track:       track,
		clock:       sched.NewPausableClock(provider),
		reverse:     reverse,
		stopOnHover: stopOnHover,
	}
}

// Publish receives parameters from the engine after each pipeline pass
func (a *TrackAnim) Publish(anim engine.Animation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.anim = anim
	a.hasAnim = true
}

// Track returns the rendered track
func (a *TrackAnim) Track() *TerminalTrack {
	return a.track
}

// SetHover pauses the cycle while a pointer rests on the track, when the
// stop-on-hover setting is enabled
func (a *TrackAnim) SetHover(hovering bool) {
	if !a.stopOnHover {
		return
	}
	if hovering {
		a.clock.Pause()
	} else {
		a.clock.Resume()
	}
}

// Offset returns the current translation in cells
// Zero until parameters are published and the track is initialized
func (a *TrackAnim) Offset() float64 {
	a.mu.Lock()
	anim := a.anim
	has := a.hasAnim
	a.mu.Unlock()

	if !has || anim.Duration <= 0 || !a.track.Initialized() {
		return 0
	}

	distance := -anim.TranslateX // published negated
	progress := math.Mod(a.clock.Elapsed().Seconds(), anim.Duration) / anim.Duration
	if a.reverse {
		return progress*distance - distance
	}
	return -progress * distance
}

// Draw renders the track at its current offset
func (a *TrackAnim) Draw() {
	a.track.Draw(a.Offset())
}

// Animator redraws every track and the shared overlay each frame
type Animator struct {
	screen tcell.Screen
	frames sched.FrameSource

	mu      sync.Mutex
	tracks  []*TrackAnim
	overlay *OverlayView
	footer  func() string

	handle  sched.Handle
	stopped atomic.Bool
}

// NewAnimator creates a stopped animator over the screen
func NewAnimator(screen tcell.Screen, frames sched.FrameSource) *Animator {
	return &Animator{
		screen: screen,
		frames: frames,
	}
}

// Add registers one track animation
func (an *Animator) Add(track *TrackAnim) {
	an.mu.Lock()
	defer an.mu.Unlock()
	an.tracks = append(an.tracks, track)
}

// SetOverlay registers the shared overlay element drawn above the tracks
func (an *Animator) SetOverlay(view *OverlayView) {
	an.mu.Lock()
	defer an.mu.Unlock()
	an.overlay = view
}

// SetFooter registers a status line drawn on the bottom row
func (an *Animator) SetFooter(fn func() string) {
	an.mu.Lock()
	defer an.mu.Unlock()
	an.footer = fn
}

// Start begins the redraw loop; repeated calls are no-ops
func (an *Animator) Start() {
	if an.stopped.Load() {
		return
	}
	an.mu.Lock()
	defer an.mu.Unlock()
	if an.handle == nil {
		an.handle = an.frames.Schedule(an.step)
	}
}

// Stop halts the redraw loop
func (an *Animator) Stop() {
	an.stopped.Store(true)
	an.mu.Lock()
	defer an.mu.Unlock()
	if an.handle != nil {
		an.handle.Cancel()
		an.handle = nil
	}
}

func (an *Animator) step() {
	if an.stopped.Load() {
		return
	}
	an.mu.Lock()
	tracks := an.tracks
	overlay := an.overlay
	footer := an.footer
	an.handle = an.frames.Schedule(an.step)
	an.mu.Unlock()

	an.screen.Clear()
	for _, t := range tracks {
		t.Draw()
	}
	if overlay != nil {
		overlay.Draw(an.screen)
	}
	if footer != nil {
		an.drawFooter(footer())
	}
	an.screen.Show()
}

func (an *Animator) drawFooter(text string) {
	w, h := an.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, ch := range []rune(text) {
		if i >= w {
			break
		}
		an.screen.SetContent(i, h-1, ch, nil, style)
	}
}
