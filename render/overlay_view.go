package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// linkGlyph is the affordance shown for linkable items
const linkGlyph = '↗'

// OverlayView implements overlay.View as a floating one-row terminal
// element. The registry positions it; Draw paints the latest state
type OverlayView struct {
	mu sync.Mutex

	x, y     int
	flipped  bool
	text     string
	linkable bool
	active   bool
	removed  bool
}

// NewOverlayView creates an inactive overlay element
func NewOverlayView() *OverlayView {
	return &OverlayView{}
}

// Width returns the element's current width in cells
// Measured fresh each frame so placement stays a pure geometry function
func (v *OverlayView) Width() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return float64(v.widthLocked())
}

func (v *OverlayView) widthLocked() int {
	w := len([]rune(v.text)) + 2
	if v.linkable {
		w += 2
	}
	if w < 4 {
		w = 4
	}
	return w
}

// Apply stores the interpolated position for the next Draw
func (v *OverlayView) Apply(x, y float64, flipped bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.x, v.y, v.flipped = int(x), int(y), flipped
}

// SetContent shows the hovered item's text and link affordance
func (v *OverlayView) SetContent(text string, linkable bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text, v.linkable, v.active = text, linkable, true
}

// ClearActive hides text and icon but keeps the element alive
func (v *OverlayView) ClearActive() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = false
}

// Remove tears the element down; Draw becomes a no-op
func (v *OverlayView) Remove() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.removed = true
}

// Draw paints the element at its applied position
func (v *OverlayView) Draw(screen tcell.Screen) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.removed || !v.active {
		return
	}

	style := tcell.StyleDefault.
		Background(tcell.ColorWhite).
		Foreground(tcell.ColorBlack)

	runes := []rune(" " + v.text + " ")
	if v.linkable {
		runes = append(runes, linkGlyph, ' ')
	}

	screenW, screenH := screen.Size()
	if v.y < 0 || v.y >= screenH {
		return
	}
	for i, ch := range runes {
		sx := v.x + i
		if sx < 0 || sx >= screenW {
			continue
		}
		screen.SetContent(sx, v.y, ch, nil, style)
	}
}
