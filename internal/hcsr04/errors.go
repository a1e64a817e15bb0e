package hcsr04

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when the echo line does not change level within
// the sensor timeout.
var ErrTimeout = errors.New("timeout waiting for sensor")

var (
	errNoEcho    = fmt.Errorf("%w: echo never rose", ErrTimeout)
	errEchoStuck = fmt.Errorf("%w: echo stuck high", ErrTimeout)
)

// AcquisitionError reports a pin the GPIO provider could not hand out.
type AcquisitionError struct {
	Pin  int
	Mode string // "output" | "input"
	Err  error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s pin %d: %v", e.Mode, e.Pin, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}
