package sched

import (
	"sort"
	"sync"
	"time"
)

// Handle controls one scheduled task
type Handle interface {
	// Cancel prevents the task from running if it has not fired yet
	// Returns true if the task was still pending
	Cancel() bool
}

// Scheduler schedules one-shot delayed callbacks
// Tasks are explicit cancellable handles rather than ambient timers so a
// test harness can drive a virtual clock deterministically
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// WallScheduler schedules on the real wall clock
type WallScheduler struct{}

// NewWallScheduler creates a real-time scheduler
func NewWallScheduler() *WallScheduler {
	return &WallScheduler{}
}

type wallHandle struct {
	timer *time.Timer
}

func (h *wallHandle) Cancel() bool {
	return h.timer.Stop()
}

// AfterFunc runs fn after d on the wall clock
func (s *WallScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	return &wallHandle{timer: time.AfterFunc(d, fn)}
}

// ManualScheduler orders tasks on a virtual clock advanced by tests
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	sched    *ManualScheduler
	deadline time.Time
	seq      int
	fn       func()
	done     bool
}

func (t *manualTask) Cancel() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewManualScheduler creates a virtual-clock scheduler starting at start
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the current virtual time
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc registers fn to run once the virtual clock passes now + d
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	task := &manualTask{
		sched:    s,
		deadline: s.now.Add(d),
		seq:      s.seq,
		fn:       fn,
	}
	s.tasks = append(s.tasks, task)
	return task
}

// Advance moves the virtual clock forward, firing due tasks in deadline
// order. The clock steps to each fired task's deadline before running
// it, so a callback that schedules further work within the advanced
// window cascades inside the same call. Callbacks run without the
// scheduler lock held
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		task := s.popDue(target)
		if task == nil {
			break
		}
		task.fn()
	}

	s.mu.Lock()
	if target.After(s.now) {
		s.now = target
	}
	s.mu.Unlock()
}

// popDue claims the earliest task due at or before target and moves the
// clock to its deadline
func (s *ManualScheduler) popDue(target time.Time) *manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].deadline.Equal(s.tasks[j].deadline) {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].deadline.Before(s.tasks[j].deadline)
	})
	for _, task := range s.tasks {
		if task.done || task.deadline.After(target) {
			continue
		}
		task.done = true
		if task.deadline.After(s.now) {
			s.now = task.deadline
		}
		return task
	}
	// Drop finished tasks
	live := s.tasks[:0]
	for _, task := range s.tasks {
		if !task.done {
			live = append(live, task)
		}
	}
	s.tasks = live
	return nil
}

// PendingCount returns the number of armed tasks, for tests
func (s *ManualScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.tasks {
		if !task.done {
			n++
		}
	}
	return n
}
