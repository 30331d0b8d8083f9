package core

// FocalPoint is a normalized anchor within an image, both axes in [0, 1]
type FocalPoint struct {
	X float64
	Y float64
}

// Clamped returns the focal point with both axes limited to [0, 1]
func (f FocalPoint) Clamped() FocalPoint {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return FocalPoint{X: clamp(f.X), Y: clamp(f.Y)}
}

// Image references the visual asset for one item
type Image struct {
	AssetURL string
	Focal    *FocalPoint
}

// Link is an optional click target for an item
type Link struct {
	URL       string
	NewWindow bool
}

// Item is one authored unit of the loop content
// Immutable once sourced; instances share items by index, never by copy
type Item struct {
	Image  Image
	Title  string
	Button *Link
}

// Linkable reports whether the item carries a usable click target
func (it Item) Linkable() bool {
	return it.Button != nil && it.Button.URL != ""
}

// OpensNewWindow resolves the new-window policy for this item
// The per-item flag wins when a button is present, else the global default
func (it Item) OpensNewWindow(globalDefault bool) bool {
	if it.Button != nil {
		return it.Button.NewWindow
	}
	return globalDefault
}
