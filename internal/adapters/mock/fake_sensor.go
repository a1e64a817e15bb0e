package mock

import (
	"context"
	"math/rand"
	"sync"
)

// FakeSensor simulates a distance sensor for development
// This implements the ports.DistanceSensor interface
type FakeSensor struct {
	mu        sync.Mutex
	baseValue float64
	variation float64
	err       error
	reads     int
}

// NewFakeSensor creates a sensor that returns realistic values
// baseValue: average distance in cm (e.g., 120 for a half-full tank)
// variation: +/- range (e.g., 5 means 115-125)
func NewFakeSensor(baseValue, variation float64) *FakeSensor {
	return &FakeSensor{
		baseValue: baseValue,
		variation: variation,
	}
}

// ReadDistance returns a simulated distance reading
// Simulates ripples on the surface and echo jitter
func (s *FakeSensor) ReadDistance(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads++
	if s.err != nil {
		return 0, s.err
	}

	// Random value around base +/- variation
	variance := (rand.Float64() - 0.5) * 2 * s.variation
	cm := s.baseValue + variance

	// Ensure non-negative
	if cm < 0 {
		cm = 0
	}

	return cm, nil
}

// FailWith makes every following read return err; nil restores normal reads
func (s *FakeSensor) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Reads returns how many times ReadDistance was called
func (s *FakeSensor) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Close is a no-op for fake sensor
func (s *FakeSensor) Close() error {
	return nil
}
