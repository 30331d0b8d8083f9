// Package scene defines the boundary between the loop engine and the
// rendering layer. The engine receives an abstract track (ordered items
// plus a geometry-query capability) and returns computed parameters; how
// visuals are physically cloned belongs to the adapter behind Track.
package scene

import "github.com/lixenwraith/marquee/core"

// Settlement reports one rendered item's visual readiness
// It yields exactly one value: nil on load success or the load error.
// Both outcomes count as settled for the readiness barrier
type Settlement <-chan error

// Track is the measurable container owning the rendered nodes for one
// loop instance, implemented by the rendering adapter
// Exactly one Track per instance
type Track interface {
	// RenderBase rebuilds the original (non-clone) rendering from items
	// and returns one settlement signal per item
	RenderBase(items []core.Item) []Settlement

	// AppendCopies appends n full copies of the base sequence as clones,
	// in original order
	AppendCopies(n int)

	// StripClones removes every clone, leaving the base rendering
	StripClones()

	// Clear removes all rendered content, originals included, and drops
	// the initialized marking
	Clear()

	// Width returns the current total rendered width in pixels
	// Zero means the track is hidden or not yet laid out
	Width() float64

	// Gap returns the computed inter-item gap in pixels
	Gap() float64

	// ChildCount returns the rendered node count, clones included
	ChildCount() int

	// OriginalWidths returns the measured widths of the originals only
	OriginalWidths() []float64

	// MarkInitialized sets or clears the marker the rendering layer keys
	// animation on; without it the presentation stays static
	MarkInitialized(on bool)

	// Initialized reports the marker state
	Initialized() bool
}

// Viewport exposes the current viewport dimensions
type Viewport interface {
	Size() (w, h float64)
}

// Settled returns an already-settled signal, for adapters whose visuals
// carry no asynchronous load
func Settled(err error) Settlement {
	ch := make(chan error, 1)
	ch <- err
	close(ch)
	return ch
}
