package ports

import "time"

// ClockPort provides "now" for overdue checks and suggested dates, so
// time-sensitive rules can be driven deterministically in tests.
type ClockPort interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
