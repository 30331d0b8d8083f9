package sched

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of triggers into a single trailing callback
// Only the most recently scheduled invocation executes; earlier ones are
// superseded by cancelling their handles
type Debouncer struct {
	window time.Duration
	sched  Scheduler

	mu      sync.Mutex
	pending Handle
}

// NewDebouncer creates a debouncer with the given settling window
func NewDebouncer(window time.Duration, sched Scheduler) *Debouncer {
	return &Debouncer{
		window: window,
		sched:  sched,
	}
}

// Trigger arms (or re-arms) the window; fn runs once the window elapses
// with no further triggers
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Cancel()
	}
	d.pending = d.sched.AfterFunc(d.window, func() {
		d.mu.Lock()
		d.pending = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel disarms any pending callback
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
}

// Pending reports whether a callback is armed
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
