package status

import "sync/atomic"

// Well-known metric keys written by the loop pipeline
// Callers cache the pointers at init; hot paths write atomics directly
const (
	KeyBuildsStarted   = "builds.started"
	KeyBuildsCompleted = "builds.completed"
	KeyMeasureRetries  = "measure.retries"
	KeyFailMissing     = "fail.missing_source"
	KeyFailMeasure     = "fail.measurement_unavailable"
	KeyFailZero        = "fail.zero_distance"
	KeyResizeRebuilds  = "resize.rebuilds"
	KeyOverlayRefs     = "overlay.refs"
	KeyOverlayFrames   = "overlay.frames"
	KeyScrollDistance  = "timing.scroll_distance"
	KeyDuration        = "timing.duration"
)

// Registry is the central diagnostics facade for loop instances
// Non-throwing error reporting lands here as counters; the demo surfaces
// the values on screen
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}
