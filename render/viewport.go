package render

import (
	"github.com/gdamore/tcell/v2"
)

// ScreenViewport adapts a tcell screen to the scene viewport query
type ScreenViewport struct {
	screen tcell.Screen
}

// NewScreenViewport wraps the screen
func NewScreenViewport(screen tcell.Screen) *ScreenViewport {
	return &ScreenViewport{screen: screen}
}

// Size returns the screen dimensions in cells
func (v *ScreenViewport) Size() (float64, float64) {
	w, h := v.screen.Size()
	return float64(w), float64(h)
}
