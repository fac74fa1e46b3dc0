// Package clock abstracts time access so controllers can be tested with a
// fixed clock.
package clock

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// New returns a Clock backed by the system clock
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
