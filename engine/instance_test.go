package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/marquee/core"
	"github.com/lixenwraith/marquee/overlay"
)

type fakeOverlayView struct {
	text     string
	linkable bool
	cleared  int
	removed  bool
}

func (v *fakeOverlayView) Width() float64              { return 80 }
func (v *fakeOverlayView) Apply(x, y float64, f bool)  {}
func (v *fakeOverlayView) SetContent(t string, l bool) { v.text, v.linkable = t, l }
func (v *fakeOverlayView) ClearActive()                { v.cleared++ }
func (v *fakeOverlayView) Remove()                     { v.removed = true }

func TestNewRequiresItems(t *testing.T) {
	_, err := newRig(Config{Items: []core.Item{}})
	if !errors.Is(err, ErrMissingSource) {
		t.Fatalf("err = %v, want ErrMissingSource", err)
	}
}

func TestResolveDuringReconcile(t *testing.T) {
	r, err := newRig(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.inst.Start(); err != nil {
		t.Fatal(err)
	}

	// Lookups race against the handle arena being stripped and rebuilt
	// unless both go through the instance lock
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			r.inst.Resolve(4)
		}
	}()

	for i := 0; i < 20; i++ {
		r.inst.NotifyResize()
		r.settle()
	}
	<-done

	// Child 4 is the second item of the first appended copy
	item, ok := r.inst.Resolve(4)
	if !ok || item.Title != "two" {
		t.Errorf("child 4 = %q, %v, want clone of the second item", item.Title, ok)
	}
}

func TestStartTwice(t *testing.T) {
	r, err := newRig(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.inst.Start(); err != nil {
		t.Fatal(err)
	}
	if err := r.inst.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start err = %v, want ErrAlreadyStarted", err)
	}
}

func TestDestroyIsTerminal(t *testing.T) {
	r, err := newRig(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.inst.Start(); err != nil {
		t.Fatal(err)
	}

	r.inst.Destroy()
	if r.inst.Phase() != PhaseDestroyed {
		t.Fatalf("phase = %v, want destroyed", r.inst.Phase())
	}

	// Later calls are no-ops
	r.inst.Destroy()
	r.inst.NotifyResize()
	r.settle()
	if got := r.track.renders(); got != 1 {
		t.Errorf("destroyed instance rebuilt, renders = %d", got)
	}
}

func TestDestroyCancelsPendingWork(t *testing.T) {
	track := &fakeTrack{widths: []float64{100}, zeroMeasurements: 1000}
	r, err := newRig(Config{Track: track})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.inst.Start(); err != nil {
		t.Fatal(err)
	}
	r.inst.NotifyResize() // arm the debounce alongside the pending retry

	measured := track.measureCalls()
	r.inst.Destroy()

	r.frames.StepN(10)
	r.settle()

	if got := track.measureCalls(); got != measured {
		t.Errorf("pending retry ran after destroy (%d -> %d measurements)", measured, got)
	}
}

func TestOverlayRegistrationLifetime(t *testing.T) {
	frames := newRigFrames()
	var views []*fakeOverlayView
	reg := overlay.NewRegistry(frames, &fakeViewport{w: 1000, h: 600}, func() overlay.View {
		v := &fakeOverlayView{}
		views = append(views, v)
		return v
	}, nil)

	a, err := newRig(Config{Overlay: reg})
	if err != nil {
		t.Fatal(err)
	}
	b, err := newRig(Config{Overlay: reg})
	if err != nil {
		t.Fatal(err)
	}

	if reg.Refs() != 2 || len(views) != 1 {
		t.Fatalf("refs = %d views = %d, want 2 refs over 1 view", reg.Refs(), len(views))
	}

	a.inst.Destroy()
	if !reg.Active() {
		t.Fatal("overlay destroyed while another instance registered")
	}
	b.inst.Destroy()
	if reg.Active() {
		t.Fatal("overlay survived last instance destroy")
	}
	if !views[0].removed {
		t.Error("overlay view not removed")
	}
}

func TestPointerContribution(t *testing.T) {
	frames := newRigFrames()
	var view *fakeOverlayView
	reg := overlay.NewRegistry(frames, &fakeViewport{w: 1000, h: 600}, func() overlay.View {
		view = &fakeOverlayView{}
		return view
	}, nil)

	r, err := newRig(Config{
		Overlay:  reg,
		Settings: core.Settings{AllowClickthrough: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.inst.Start(); err != nil {
		t.Fatal(err)
	}

	// Child 3 is the first clone of item 0 ("one", linkable)
	r.inst.PointerMoved(400, 120, 3)
	if view.text != "one" || !view.linkable {
		t.Errorf("overlay content = %q/%v, want one/linkable", view.text, view.linkable)
	}

	// Item without a button shows no link affordance
	r.inst.PointerMoved(420, 120, 1)
	if view.text != "two" || view.linkable {
		t.Errorf("overlay content = %q/%v, want two/not linkable", view.text, view.linkable)
	}

	r.inst.PointerLeft()
	if view.cleared != 1 {
		t.Errorf("ClearActive count = %d, want 1", view.cleared)
	}
	if reg.Refs() != 1 {
		t.Error("PointerLeft deregistered the instance")
	}
}

func TestPointerWithoutClickthrough(t *testing.T) {
	frames := newRigFrames()
	var view *fakeOverlayView
	reg := overlay.NewRegistry(frames, &fakeViewport{w: 1000, h: 600}, func() overlay.View {
		view = &fakeOverlayView{}
		return view
	}, nil)

	r, err := newRig(Config{Overlay: reg})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.inst.Start(); err != nil {
		t.Fatal(err)
	}

	r.inst.PointerMoved(10, 10, 0)
	if view.linkable {
		t.Error("link affordance shown with clickthrough disabled")
	}
}

func TestPointerAfterDestroyIsNoop(t *testing.T) {
	frames := newRigFrames()
	var view *fakeOverlayView
	reg := overlay.NewRegistry(frames, &fakeViewport{w: 1000, h: 600}, func() overlay.View {
		view = &fakeOverlayView{}
		return view
	}, nil)
	reg.Acquire() // keep the overlay alive past the instance

	r, err := newRig(Config{Overlay: reg})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.inst.Start(); err != nil {
		t.Fatal(err)
	}

	r.inst.Destroy()
	r.inst.PointerMoved(10, 10, 0)
	if view.text != "" {
		t.Error("destroyed instance still contributed to the overlay")
	}
}
