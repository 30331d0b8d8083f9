package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/marquee/core"
	"github.com/lixenwraith/marquee/scene"
	"github.com/lixenwraith/marquee/sched"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeTrack is a minimal scene.Track for driving the pipeline in tests
type fakeTrack struct {
	mu sync.Mutex

	widths []float64
	gap    float64

	// baseWidth overrides the measured base width; zero means derive it
	// from widths + gaps
	baseWidth float64

	// zeroMeasurements makes Width report 0 for that many calls,
	// simulating a hidden or unlaid-out track
	zeroMeasurements int

	copies      int
	rendered    bool
	initialized bool

	renderCount int
	clearCount  int
	widthCalls  int

	// settleControl, when set, returns these settlements from RenderBase
	// instead of immediately-settled ones
	settleControl []scene.Settlement
}

func (t *fakeTrack) RenderBase(items []core.Item) []scene.Settlement {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rendered = true
	t.copies = 0
	t.renderCount++

	if t.settleControl != nil {
		return t.settleControl
	}
	settlements := make([]scene.Settlement, len(items))
	for i := range settlements {
		settlements[i] = scene.Settled(nil)
	}
	return settlements
}

func (t *fakeTrack) AppendCopies(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.copies += n
}

func (t *fakeTrack) StripClones() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.copies = 0
}

func (t *fakeTrack) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rendered = false
	t.copies = 0
	t.initialized = false
	t.clearCount++
}

func (t *fakeTrack) base() float64 {
	if t.baseWidth != 0 {
		return t.baseWidth
	}
	var w float64
	for _, iw := range t.widths {
		w += iw
	}
	return w + t.gap*float64(len(t.widths))
}

func (t *fakeTrack) Width() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.widthCalls++
	if !t.rendered {
		return 0
	}
	if t.zeroMeasurements > 0 {
		t.zeroMeasurements--
		return 0
	}
	return t.base() * float64(1+t.copies)
}

func (t *fakeTrack) Gap() float64 { return t.gap }

func (t *fakeTrack) ChildCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.rendered {
		return 0
	}
	return len(t.widths) * (1 + t.copies)
}

func (t *fakeTrack) OriginalWidths() []float64 { return t.widths }

func (t *fakeTrack) MarkInitialized(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.initialized = on
}

func (t *fakeTrack) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized
}

func (t *fakeTrack) copyCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copies
}

func (t *fakeTrack) renders() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.renderCount
}

func (t *fakeTrack) measureCalls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.widthCalls
}

type fakeViewport struct {
	w, h float64
}

func (v *fakeViewport) Size() (float64, float64) { return v.w, v.h }

// rig bundles an instance with its fakes and deterministic schedulers
type rig struct {
	track     *fakeTrack
	viewport  *fakeViewport
	frames    *sched.ManualFrames
	clock     *sched.ManualScheduler
	published []Animation
	inst      *Instance
}

func threeItems() []core.Item {
	return []core.Item{
		{Title: "one", Button: &core.Link{URL: "https://a"}},
		{Title: "two"},
		{Title: "three", Button: &core.Link{URL: "https://c", NewWindow: true}},
	}
}

func newRig(cfg Config) (*rig, error) {
	r := &rig{
		frames: sched.NewManualFrames(),
		clock:  sched.NewManualScheduler(epoch),
	}
	if cfg.Track == nil {
		r.track = &fakeTrack{widths: []float64{100, 150, 120}, gap: 20}
		cfg.Track = r.track
	} else {
		r.track = cfg.Track.(*fakeTrack)
	}
	if cfg.Viewport == nil {
		r.viewport = &fakeViewport{w: 1200, h: 800}
		cfg.Viewport = r.viewport
	} else {
		r.viewport = cfg.Viewport.(*fakeViewport)
	}
	cfg.Frames = r.frames
	cfg.Clock = r.clock
	if cfg.Items == nil {
		cfg.Items = threeItems()
	}
	cfg.Publish = func(a Animation) {
		r.published = append(r.published, a)
	}

	inst, err := New(cfg)
	if err != nil {
		return nil, err
	}
	r.inst = inst
	return r, nil
}

// settle resolves the resize debounce window
func (r *rig) settle() {
	r.clock.Advance(ResizeDebounce)
}

// newRigFrames supplies a dedicated frame source for overlay registries
func newRigFrames() *sched.ManualFrames {
	return sched.NewManualFrames()
}
