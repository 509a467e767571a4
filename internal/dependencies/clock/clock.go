package clock

import "time"

// Clock provides time operations that can be mocked for testing.
// Turn-timer math must go through a Clock so the sweeper is testable
// without wall-clock sleeps.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
