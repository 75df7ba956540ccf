package masrafci

import "time"

// Clock abstracts the current time so the reminder due check can be
// exercised at any date in tests
type Clock interface {
	Now() time.Time
}

// SystemClock returns the wall clock time
type SystemClock struct{}

// Now returns the current local time
func (SystemClock) Now() time.Time {
	return time.Now()
}

var _ Clock = SystemClock{}
