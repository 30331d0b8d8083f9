package sched

import "time"

// TimeProvider abstracts the time source so tests can drive a virtual clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
