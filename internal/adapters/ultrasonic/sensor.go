// Package ultrasonic adapts an HC-SR04 to the ports.DistanceSensor interface.
package ultrasonic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/hcsr04"
)

// DefaultCycle is the datasheet's minimum time between two trigger pulses,
// long enough for the previous burst's echoes to die out.
const DefaultCycle = 60 * time.Millisecond

// Option configures a Sensor.
type Option func(*Sensor)

// WithCycle sets the minimum gap between measurements. Zero disables it.
func WithCycle(d time.Duration) Option {
	return func(s *Sensor) {
		if d >= 0 {
			s.cycle = d
		}
	}
}

// WithClock replaces the system clock used for the cycle gap. Open hands
// the same clock to the hcsr04.Sensor it creates.
func WithClock(clock hcsr04.Clock) Option {
	return func(s *Sensor) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Sensor reads distances from an HC-SR04, one measurement at a time.
// This implements the ports.DistanceSensor interface
type Sensor struct {
	mu    sync.Mutex
	dev   *hcsr04.Sensor
	cycle time.Duration
	clock hcsr04.Clock
	last  time.Time
}

// New wraps an already constructed device.
func New(dev *hcsr04.Sensor, opts ...Option) *Sensor {
	s := &Sensor{
		dev:   dev,
		cycle: DefaultCycle,
		clock: hcsr04.SystemClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open claims the trigger and echo pins from p and wraps the resulting
// device. Closing the Sensor releases the pins but not p.
func Open(p hcsr04.Provider, trigger, echo int, timeout time.Duration, opts ...Option) (*Sensor, error) {
	s := New(nil, opts...)

	dev, err := hcsr04.NewWithTimeout(p, trigger, echo, timeout, hcsr04.WithClock(s.clock))
	if err != nil {
		return nil, err
	}
	s.dev = dev

	log.Info().
		Int("trigger_pin", trigger).
		Int("echo_pin", echo).
		Dur("timeout", timeout).
		Dur("cycle", s.cycle).
		Msg("HC-SR04 ready")
	return s, nil
}

// ReadDistance triggers one measurement and returns centimeters. A context
// that is done before the trigger fires, including one cancelled during the
// cycle gap, stops the call; once the pulse is out the measurement runs to
// completion or timeout.
func (s *Sensor) ReadDistance(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dev == nil {
		return 0, fmt.Errorf("%w: sensor closed", domain.ErrSensorUnavailable)
	}

	if !s.last.IsZero() {
		if wait := s.cycle - s.clock.Now().Sub(s.last); wait > 0 {
			s.clock.Sleep(wait)
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
	}

	m, err := s.dev.Measure()
	s.last = s.clock.Now()
	if err != nil {
		if errors.Is(err, hcsr04.ErrTimeout) {
			log.Warn().Err(err).Dur("timeout", s.dev.Timeout()).Msg("no echo from HC-SR04")
			return 0, fmt.Errorf("%w: %w", domain.ErrSensorUnavailable, err)
		}
		return 0, err
	}

	cm := m.Centimeters()
	log.Debug().Dur("pulse", m.Pulse).Float64("distance_cm", cm).Msg("measured echo")
	return cm, nil
}

// Close releases both pins. Later reads fail with domain.ErrSensorUnavailable.
func (s *Sensor) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	return err
}
