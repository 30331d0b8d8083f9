package sched

import (
	"sync"
	"time"
)

// PausableClock provides pausable animation time with pause duration
// tracking. While paused the reported time freezes, so an animation keyed
// on elapsed time holds its position and resumes without a jump
type PausableClock struct {
	mu sync.Mutex

	provider TimeProvider

	startTime   time.Time
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewPausableClock creates a running clock on the given time source
func NewPausableClock(provider TimeProvider) *PausableClock {
	return &PausableClock{
		provider:  provider,
		startTime: provider.Now(),
	}
}

// Elapsed returns time since creation, excluding paused spans
func (c *PausableClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		return c.pauseStart.Sub(c.startTime) - c.totalPaused
	}
	return c.provider.Now().Sub(c.startTime) - c.totalPaused
}

// Pause freezes elapsed time; repeated calls are no-ops
func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.pauseStart = c.provider.Now()
}

// Resume continues elapsed time from where Pause froze it
func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.totalPaused += c.provider.Now().Sub(c.pauseStart)
	c.paused = false
}

// IsPaused reports the pause state
func (c *PausableClock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}
