package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a lock-free float64 gauge stored as raw bits
// The zero value reads as 0.0 and is ready to use; the published timing
// values (scroll distance, duration) live in these
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set replaces the stored value
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get returns the stored value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add adds delta and returns the result, retrying on concurrent writes
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if f.bits.CompareAndSwap(old, next) {
			return math.Float64frombits(next)
		}
	}
}
