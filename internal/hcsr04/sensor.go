package hcsr04

import (
	"errors"
	"time"
)

const (
	// DefaultTimeout bounds each echo wait when New is used.
	DefaultTimeout = 100 * time.Millisecond

	// TriggerPulse is the trigger width the sensor needs to start a cycle.
	TriggerPulse = 10 * time.Microsecond

	// SpeedOfSound in dry air at 293.15K, in centimeters per second.
	SpeedOfSound = 34300.0

	// cmPerSecond halves SpeedOfSound since the echo covers the round trip.
	cmPerSecond = SpeedOfSound / 2
)

// Measurement is the width of one echo pulse.
type Measurement struct {
	Pulse time.Duration
}

// Centimeters converts the echo width to a one-way distance.
func (m Measurement) Centimeters() float64 {
	return m.Pulse.Seconds() * cmPerSecond
}

// Sensor is an HC-SR04 wired to one trigger and one echo pin.
type Sensor struct {
	trigger OutputPin
	echo    InputPin
	timeout time.Duration
	clock   Clock
}

// New claims the trigger and echo pins from p with DefaultTimeout.
func New(p Provider, trigger, echo int, opts ...Option) (*Sensor, error) {
	return NewWithTimeout(p, trigger, echo, DefaultTimeout, opts...)
}

// NewWithTimeout claims the trigger pin as an output and the echo pin as an
// input, then drives the trigger low. If either pin cannot be claimed the
// error is an *AcquisitionError and no pin stays claimed.
func NewWithTimeout(p Provider, trigger, echo int, timeout time.Duration, opts ...Option) (*Sensor, error) {
	out, err := p.OutputPin(trigger)
	if err != nil {
		return nil, &AcquisitionError{Pin: trigger, Mode: "output", Err: err}
	}

	in, err := p.InputPin(echo)
	if err != nil {
		_ = out.Close()
		return nil, &AcquisitionError{Pin: echo, Mode: "input", Err: err}
	}

	out.SetLow()

	s := &Sensor{
		trigger: out,
		echo:    in,
		timeout: timeout,
		clock:   realClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Timeout returns the bound applied to each echo wait.
func (s *Sensor) Timeout() time.Duration {
	return s.timeout
}

// Distance triggers one measurement and returns the distance in centimeters.
func (s *Sensor) Distance() (float64, error) {
	m, err := s.Measure()
	if err != nil {
		return 0, err
	}
	return m.Centimeters(), nil
}

// Measure triggers the sensor and times the echo pulse. It blocks for at
// most twice the timeout plus the trigger pulse.
func (s *Sensor) Measure() (Measurement, error) {
	s.trigger.SetHigh()
	s.clock.Sleep(TriggerPulse)
	s.trigger.SetLow()

	startWait := s.clock.Now()
	for s.echo.IsLow() {
		if s.clock.Now().Sub(startWait) > s.timeout {
			return Measurement{}, errNoEcho
		}
	}

	startPulse := s.clock.Now()
	for s.echo.IsHigh() {
		if s.clock.Now().Sub(startPulse) > s.timeout {
			return Measurement{}, errEchoStuck
		}
	}

	return Measurement{Pulse: s.clock.Now().Sub(startPulse)}, nil
}

// Close drives the trigger low and releases both pins.
func (s *Sensor) Close() error {
	s.trigger.SetLow()
	return errors.Join(s.echo.Close(), s.trigger.Close())
}
