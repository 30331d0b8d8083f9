package overlay

// View is the rendered overlay element, implemented by the rendering
// adapter. The registry drives it; it never drives itself
type View interface {
	// Width returns the element's current width in pixels, measured fresh
	// each frame so the placement rule stays a pure function of live geometry
	Width() float64

	// Apply positions the element at the interpolated coordinates
	// flipped is true when the edge rule moved it to the pointer's left
	Apply(x, y float64, flipped bool)

	// SetContent shows the hovered item's display text and, when linkable,
	// the link affordance
	SetContent(text string, linkable bool)

	// ClearActive hides text and icon without removing the element
	ClearActive()

	// Remove tears the element down entirely
	Remove()
}
