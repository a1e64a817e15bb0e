package hcsr04

import "time"

// Clock provides the time operations a measurement depends on.
// Now must carry a monotonic reading.
type Clock interface {
	Now() time.Time
	Sleep(time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the Clock backed by package time.
func SystemClock() Clock { return realClock{} }
