// Package clock provides the time source the controller and scene read from.
package clock

import "time"

// Clock returns the current time with a monotonic reading.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }
