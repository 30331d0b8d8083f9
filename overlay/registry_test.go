package overlay

import (
	"testing"

	"github.com/lixenwraith/marquee/sched"
	"github.com/lixenwraith/marquee/status"
)

type fakeViewport struct {
	w, h float64
}

func (v *fakeViewport) Size() (float64, float64) {
	return v.w, v.h
}

type fakeView struct {
	width    float64
	applies  int
	lastX    float64
	lastY    float64
	flipped  bool
	text     string
	linkable bool
	cleared  int
	removed  bool
}

func (v *fakeView) Width() float64 { return v.width }

func (v *fakeView) Apply(x, y float64, flipped bool) {
	v.applies++
	v.lastX, v.lastY, v.flipped = x, y, flipped
}

func (v *fakeView) SetContent(text string, linkable bool) {
	v.text, v.linkable = text, linkable
}

func (v *fakeView) ClearActive() { v.cleared++ }
func (v *fakeView) Remove()      { v.removed = true }

type harness struct {
	frames *sched.ManualFrames
	views  []*fakeView
	reg    *Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{frames: sched.NewManualFrames()}
	vp := &fakeViewport{w: 1000, h: 600}
	h.reg = NewRegistry(h.frames, vp, func() View {
		v := &fakeView{width: 100}
		h.views = append(h.views, v)
		return v
	}, status.NewRegistry())
	return h
}

func TestAcquireCreatesAtLeftEdgeMidViewport(t *testing.T) {
	h := newHarness(t)
	ticket := h.reg.Acquire()
	defer ticket.Release()

	pos, ok := h.reg.Position()
	if !ok {
		t.Fatal("overlay not active after acquire")
	}
	if pos.X != 0 || pos.Y != 300 {
		t.Errorf("initial position = %+v, want {0 300}", pos)
	}
	if len(h.views) != 1 {
		t.Fatalf("created %d views, want 1", len(h.views))
	}
}

func TestReferenceCounting(t *testing.T) {
	h := newHarness(t)
	a := h.reg.Acquire()
	b := h.reg.Acquire()

	if len(h.views) != 1 {
		t.Fatalf("second acquire created a new view")
	}

	a.Release()
	if !h.reg.Active() {
		t.Fatal("overlay destroyed while B still registered")
	}
	if h.views[0].removed {
		t.Fatal("view removed while B still registered")
	}

	b.Release()
	if h.reg.Active() {
		t.Fatal("overlay survived last release")
	}
	if !h.views[0].removed {
		t.Fatal("view not removed on last release")
	}
}

func TestDoubleReleaseIsNoop(t *testing.T) {
	h := newHarness(t)
	a := h.reg.Acquire()
	b := h.reg.Acquire()

	a.Release()
	a.Release() // must not steal B's reference
	if !h.reg.Active() {
		t.Fatal("double release destroyed the overlay")
	}
	b.Release()
}

func TestFreshOverlayAfterTeardown(t *testing.T) {
	h := newHarness(t)
	a := h.reg.Acquire()
	h.reg.SetTarget(500, 100)
	h.frames.StepN(10)
	a.Release()

	// A later registration creates a new overlay with reset position
	b := h.reg.Acquire()
	defer b.Release()

	if len(h.views) != 2 {
		t.Fatalf("reacquire reused the old view")
	}
	pos, _ := h.reg.Position()
	if pos.X != 0 || pos.Y != 300 {
		t.Errorf("position after reacquire = %+v, want reset {0 300}", pos)
	}
}

func TestInterpolationStep(t *testing.T) {
	h := newHarness(t)
	ticket := h.reg.Acquire()
	defer ticket.Release()

	h.reg.SetTarget(100, 300)
	h.frames.Step()

	// One frame covers 10% of the remaining distance per axis
	pos, _ := h.reg.Position()
	if pos.X != 10 || pos.Y != 300 {
		t.Errorf("position after one frame = %+v, want {10 300}", pos)
	}

	h.frames.Step()
	pos, _ = h.reg.Position()
	if pos.X != 19 {
		t.Errorf("position after two frames = %v, want 19", pos.X)
	}
}

func TestLoopStopsOnLastRelease(t *testing.T) {
	h := newHarness(t)
	ticket := h.reg.Acquire()
	h.frames.StepN(3)
	applied := h.views[0].applies
	if applied != 3 {
		t.Fatalf("applies = %d, want 3", applied)
	}

	ticket.Release()
	h.frames.StepN(5)
	if h.views[0].applies != applied {
		t.Error("frame loop kept running after last release")
	}
}

func TestPlacementFlip(t *testing.T) {
	// 850 + 20 + 100 < 1000 → right side
	if x, flipped := Place(850, 100, 1000); flipped || x != 870 {
		t.Errorf("Place(850) = %v/%v, want 870 right", x, flipped)
	}
	// 900 + 20 + 100 > 1000 → flip left
	if x, flipped := Place(900, 100, 1000); !flipped || x != 780 {
		t.Errorf("Place(900) = %v/%v, want 780 flipped", x, flipped)
	}
	// Memoryless: moving back flips right again immediately
	if _, flipped := Place(850, 100, 1000); flipped {
		t.Error("placement kept hysteresis")
	}
}

func TestContributionAndClearActive(t *testing.T) {
	h := newHarness(t)
	ticket := h.reg.Acquire()
	defer ticket.Release()

	h.reg.Show("Autumn Collection", true)
	if h.views[0].text != "Autumn Collection" || !h.views[0].linkable {
		t.Errorf("content not applied: %+v", h.views[0])
	}

	h.reg.ClearActive()
	if h.views[0].cleared != 1 {
		t.Error("ClearActive not forwarded to view")
	}
	if !h.reg.Active() {
		t.Error("ClearActive deregistered the overlay")
	}
}

func TestContributionWithoutOverlayIsNoop(t *testing.T) {
	h := newHarness(t)
	h.reg.SetTarget(10, 10)
	h.reg.Show("x", false)
	h.reg.ClearActive()
	if h.reg.Active() {
		t.Error("contribution calls created an overlay")
	}
}
