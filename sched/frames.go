package sched

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameSource schedules callbacks on frame boundaries
// One Schedule call runs fn exactly once on the next frame; continuous
// loops reschedule themselves from within the callback
type FrameSource interface {
	Schedule(fn func()) Handle
}

// TickerFrames drives frame callbacks from a fixed-interval ticker
// All callbacks for one frame run sequentially on the ticker goroutine
type TickerFrames struct {
	interval time.Duration

	mu      sync.Mutex
	pending []*frameTask

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

type frameTask struct {
	fn        func()
	cancelled atomic.Bool
}

func (t *frameTask) Cancel() bool {
	return t.cancelled.CompareAndSwap(false, true)
}

// NewTickerFrames creates a frame source at the given interval
// Call Start before scheduling and Stop on shutdown
func NewTickerFrames(interval time.Duration) *TickerFrames {
	return &TickerFrames{
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the frame goroutine; repeated calls are no-ops
func (f *TickerFrames) Start() {
	if !f.running.CompareAndSwap(false, true) {
		return
	}
	f.wg.Add(1)
	go f.loop()
}

func (f *TickerFrames) loop() {
	defer f.wg.Done()
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.stopChan:
			return
		case <-ticker.C:
			f.runFrame()
		}
	}
}

func (f *TickerFrames) runFrame() {
	f.mu.Lock()
	batch := f.pending
	f.pending = nil
	f.mu.Unlock()

	for _, task := range batch {
		if task.cancelled.Load() {
			continue
		}
		task.fn()
	}
}

// Schedule runs fn on the next frame boundary
func (f *TickerFrames) Schedule(fn func()) Handle {
	task := &frameTask{fn: fn}
	f.mu.Lock()
	f.pending = append(f.pending, task)
	f.mu.Unlock()
	return task
}

// Stop terminates the frame goroutine and waits for it to exit
// Pending callbacks are discarded
func (f *TickerFrames) Stop() {
	f.stopOnce.Do(func() {
		close(f.stopChan)
	})
	f.wg.Wait()
	f.running.Store(false)
}

// ManualFrames is a test frame source advanced one frame at a time
type ManualFrames struct {
	mu      sync.Mutex
	pending []*frameTask
	frames  int
}

// NewManualFrames creates an empty manual frame source
func NewManualFrames() *ManualFrames {
	return &ManualFrames{}
}

// Schedule queues fn for the next Step call
func (f *ManualFrames) Schedule(fn func()) Handle {
	task := &frameTask{fn: fn}
	f.mu.Lock()
	f.pending = append(f.pending, task)
	f.mu.Unlock()
	return task
}

// Step runs every callback queued before this frame
// Callbacks scheduled during Step land on the following frame
func (f *ManualFrames) Step() {
	f.mu.Lock()
	batch := f.pending
	f.pending = nil
	f.frames++
	f.mu.Unlock()

	for _, task := range batch {
		if task.cancelled.Load() {
			continue
		}
		task.fn()
	}
}

// StepN advances n frames
func (f *ManualFrames) StepN(n int) {
	for i := 0; i < n; i++ {
		f.Step()
	}
}

// FrameCount returns the number of frames stepped so far
func (f *ManualFrames) FrameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// PendingCount returns queued, uncancelled callbacks, for tests
func (f *ManualFrames) PendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, task := range f.pending {
		if !task.cancelled.Load() {
			n++
		}
	}
	return n
}
