package engine

import "time"

// Clock abstracts time.Now() so that "today" can be fixed in tests.
// Validation uses it to reject birth dates that are not in the past.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
