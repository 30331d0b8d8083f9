// Package timing derives scroll distance and cycle duration from measured
// track geometry. Pure computation; publishing the result is the caller's job.
package timing

import (
	"errors"

	"github.com/lixenwraith/marquee/core"
)

// ErrZeroDistance signals a computed scroll distance of zero
// The caller must not publish parameters or animate
var ErrZeroDistance = errors.New("timing: scroll distance is zero")

// Input is the measured geometry and speed configuration for one pass
// ItemWidths must cover originals only, never clones
type Input struct {
	ItemWidths    []float64
	Gap           float64
	SpeedMobile   float64
	SpeedDesktop  float64
	ViewportWidth float64
}

// Params are the two published animation parameters
type Params struct {
	// ScrollDistance is the length of one seamless cycle in pixels
	// Always positive here; the rendering layer applies it negated
	ScrollDistance float64

	// Duration is the cycle time in seconds at the selected speed
	Duration float64
}

// Compute derives the cycle parameters from one original pass of items
//
//	scrollDistance = Σ widths + gap × count
//	duration       = scrollDistance / speed
//
// Speed selection follows the viewport: below the mobile breakpoint the
// mobile speed applies, otherwise desktop
func Compute(in Input) (Params, error) {
	var distance float64
	for _, w := range in.ItemWidths {
		distance += w
	}
	distance += in.Gap * float64(len(in.ItemWidths))

	if distance == 0 {
		return Params{}, ErrZeroDistance
	}

	speed := core.Settings{
		SpeedMobile:  in.SpeedMobile,
		SpeedDesktop: in.SpeedDesktop,
	}.Normalize().SpeedFor(in.ViewportWidth)

	return Params{
		ScrollDistance: distance,
		Duration:       distance / speed,
	}, nil
}
