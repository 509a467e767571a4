package timer

import "time"

// Remaining computes the time left in a turn window as
// duration - (now - startedAt), clamped to zero. All countdown display
// and expiry decisions derive from this one function so clock math never
// leaks into scheduling loops.
func Remaining(now, startedAt time.Time, duration time.Duration) time.Duration {
	remaining := duration - now.Sub(startedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Countdown reconciles a local countdown against the authoritative turn
// start time read from storage. The first sync joins the in-flight
// window, computing what is left of it; so does a re-sync with an
// unchanged start time (e.g. after a reconnect). Only a start time that
// changed since a previous sync means a genuinely new turn, and restarts
// the countdown at full duration.
type Countdown struct {
	lastStart time.Time
	synced    bool
}

// Sync updates the countdown from an authoritative start time and
// returns the remaining window
func (c *Countdown) Sync(now, startedAt time.Time, duration time.Duration) time.Duration {
	if c.synced && !startedAt.Equal(c.lastStart) {
		c.lastStart = startedAt
		return duration
	}
	c.lastStart = startedAt
	c.synced = true
	return Remaining(now, startedAt, duration)
}
