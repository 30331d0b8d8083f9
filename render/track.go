// Package render is the tcell rendering adapter behind the scene
// boundary: it lays loop items out as terminal cell blocks, measures
// their geometry for the engine, and applies the published translation
// each frame. The engine itself never touches a screen
package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/marquee/core"
	"github.com/lixenwraith/marquee/scene"
)

const (
	// padCells is the horizontal padding inside each item block
	padCells = 2

	// defaultGapCells separates adjacent blocks
	defaultGapCells = 3
)

var blockColors = []tcell.Color{
	tcell.ColorDarkCyan,
	tcell.ColorDarkMagenta,
	tcell.ColorDarkGreen,
	tcell.ColorDarkBlue,
	tcell.ColorDarkRed,
	tcell.ColorDarkGoldenrod,
}

type trackNode struct {
	origin  int
	isClone bool
	width   int
	title   string
	style   tcell.Style
}

// TerminalTrack implements scene.Track over a horizontal band of rows
// Geometry is measured in cells; one cell is one pixel to the engine
type TerminalTrack struct {
	mu sync.Mutex

	screen tcell.Screen
	row    int
	rows   int
	gap    int

	nodes       []trackNode
	baseCount   int
	initialized bool

	// hidden simulates a track with no layout; Width reports zero
	hidden bool
}

// NewTerminalTrack creates a track over rows [row, row+rows)
func NewTerminalTrack(screen tcell.Screen, row, rows int) *TerminalTrack {
	return &TerminalTrack{
		screen: screen,
		row:    row,
		rows:   rows,
		gap:    defaultGapCells,
	}
}

// RenderBase rebuilds the original blocks from items
// Terminal cells carry no asynchronous load, so every settlement is
// already resolved; the engine still routes them through its barrier
func (t *TerminalTrack) RenderBase(items []core.Item) []scene.Settlement {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nodes = t.nodes[:0]
	for i, item := range items {
		t.nodes = append(t.nodes, trackNode{
			origin: i,
			width:  len([]rune(item.Title)) + 2*padCells,
			title:  item.Title,
			style: tcell.StyleDefault.
				Background(blockColors[i%len(blockColors)]).
				Foreground(tcell.ColorWhite),
		})
	}
	t.baseCount = len(t.nodes)

	settlements := make([]scene.Settlement, len(items))
	for i := range settlements {
		settlements[i] = scene.Settled(nil)
	}
	return settlements
}

// AppendCopies appends n full copies of the base blocks as clones
func (t *TerminalTrack) AppendCopies(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	base := t.nodes[:t.baseCount]
	for c := 0; c < n; c++ {
		for _, node := range base {
			node.isClone = true
			t.nodes = append(t.nodes, node)
		}
	}
}

// StripClones truncates back to the base blocks
func (t *TerminalTrack) StripClones() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.nodes) > t.baseCount {
		t.nodes = t.nodes[:t.baseCount]
	}
}

// Clear removes all blocks and the initialized marking
func (t *TerminalTrack) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nodes = t.nodes[:0]
	t.baseCount = 0
	t.initialized = false
}

// Width is the total rendered width: every block plus its trailing gap
func (t *TerminalTrack) Width() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hidden {
		return 0
	}
	var w int
	for _, node := range t.nodes {
		w += node.width + t.gap
	}
	return float64(w)
}

// Gap returns the inter-item gap in cells
func (t *TerminalTrack) Gap() float64 {
	return float64(t.gap)
}

// ChildCount returns rendered blocks, clones included
func (t *TerminalTrack) ChildCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.nodes)
}

// OriginalWidths returns base block widths only
func (t *TerminalTrack) OriginalWidths() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	widths := make([]float64, 0, t.baseCount)
	for _, node := range t.nodes[:t.baseCount] {
		widths = append(widths, float64(node.width))
	}
	return widths
}

// MarkInitialized sets the marker draw keys animation on
func (t *TerminalTrack) MarkInitialized(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.initialized = on
}

// Initialized reports the marker
func (t *TerminalTrack) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized
}

// SetHidden toggles zero-width measurement, for sandboxing the retry path
func (t *TerminalTrack) SetHidden(hidden bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hidden = hidden
}

// Row returns the band's top row
func (t *TerminalTrack) Row() int {
	return t.row
}

// Contains reports whether screen row y falls inside the band
func (t *TerminalTrack) Contains(y int) bool {
	return y >= t.row && y < t.row+t.rows
}

// Draw renders the blocks translated by offset cells
// Without the initialized marking the presentation stays static at zero
func (t *TerminalTrack) Draw(offset float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		offset = 0
	}
	screenW, _ := t.screen.Size()

	x := int(offset)
	for _, node := range t.nodes {
		t.drawBlock(node, x, screenW)
		x += node.width + t.gap
	}
}

func (t *TerminalTrack) drawBlock(node trackNode, x, screenW int) {
	if x+node.width <= 0 || x >= screenW {
		return
	}
	title := []rune(node.title)
	for row := t.row; row < t.row+t.rows; row++ {
		for col := 0; col < node.width; col++ {
			sx := x + col
			if sx < 0 || sx >= screenW {
				continue
			}
			ch := ' '
			if row == t.row+t.rows/2 && col >= padCells && col-padCells < len(title) {
				ch = title[col-padCells]
			}
			t.screen.SetContent(sx, row, ch, nil, node.style)
		}
	}
}

// HitTest maps a screen coordinate to the rendered child under it,
// honoring the current translation; returns -1 between blocks
func (t *TerminalTrack) HitTest(x, y int, offset float64) int {
	if !t.Contains(y) {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	pos := int(offset)
	for i, node := range t.nodes {
		if x >= pos && x < pos+node.width {
			return i
		}
		pos += node.width + t.gap
	}
	return -1
}
