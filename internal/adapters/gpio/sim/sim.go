// Package sim simulates an HC-SR04 wired to a GPIO header, for development
// machines and tests without hardware.
//
// Any output pin acts as the trigger and any input pin reads the echo of the
// single simulated sensor. A trigger held high for at least 10µs starts a
// cycle: the echo rises after Target.Latency and stays high for the round
// trip time of Target.DistanceCM.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/hcsr04"
)

const (
	// DefaultLatency approximates the 8-cycle 40kHz burst plus settling.
	DefaultLatency = 450 * time.Microsecond

	// DefaultMaxPin is the highest BCM GPIO on a 40-pin header.
	DefaultMaxPin = 27
)

var (
	ErrInvalidPin = errors.New("invalid pin number")
	ErrPinBusy    = errors.New("pin already in use")
	ErrClosed     = errors.New("provider closed")
)

// Fault injects a wiring problem into the simulated sensor.
type Fault int

const (
	FaultNone         Fault = iota
	FaultDisconnected       // echo never rises
	FaultStuckHigh          // echo rises and never falls
)

// Target describes what the simulated sensor is pointed at.
type Target struct {
	DistanceCM  float64
	VariationCM float64 // +/- uniform jitter per cycle
	Latency     time.Duration
	Fault       Fault
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock replaces the system clock. The same clock should drive the
// hcsr04.Sensor reading the simulated pins.
func WithClock(clock hcsr04.Clock) Option {
	return func(p *Provider) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithMaxPin sets the highest valid pin number.
func WithMaxPin(n int) Option {
	return func(p *Provider) {
		p.maxPin = n
	}
}

// Provider is a simulated GPIO header with one HC-SR04 attached.
type Provider struct {
	mu       sync.Mutex
	clock    hcsr04.Clock
	target   Target
	maxPin   int
	claimed  map[int]bool
	closed   bool
	triggers int

	// echo window of the current cycle
	armed bool
	rise  time.Time
	fall  time.Time
	stuck bool
}

// New returns a simulated provider aimed at target.
func New(target Target, opts ...Option) *Provider {
	if target.Latency == 0 {
		target.Latency = DefaultLatency
	}
	p := &Provider{
		clock:   hcsr04.SystemClock(),
		target:  target,
		maxPin:  DefaultMaxPin,
		claimed: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetTarget changes the simulated scene from the next cycle on.
func (p *Provider) SetTarget(target Target) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if target.Latency == 0 {
		target.Latency = DefaultLatency
	}
	p.target = target
}

// Claimed reports whether pin n is currently handed out.
func (p *Provider) Claimed(n int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.claimed[n]
}

// Triggers returns how many valid trigger pulses the sensor has seen.
func (p *Provider) Triggers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.triggers
}

// OutputPin claims pin n as the trigger line.
func (p *Provider) OutputPin(n int) (hcsr04.OutputPin, error) {
	if err := p.claim(n); err != nil {
		return nil, err
	}
	return &triggerPin{p: p, n: n}, nil
}

// InputPin claims pin n as the echo line.
func (p *Provider) InputPin(n int) (hcsr04.InputPin, error) {
	if err := p.claim(n); err != nil {
		return nil, err
	}
	return &echoPin{p: p, n: n}, nil
}

// Close releases every pin. Later claims fail with ErrClosed.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.claimed = make(map[int]bool)
	p.armed = false
	return nil
}

func (p *Provider) claim(n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.closed:
		return ErrClosed
	case n < 0 || n > p.maxPin:
		return fmt.Errorf("pin %d: %w", n, ErrInvalidPin)
	case p.claimed[n]:
		return fmt.Errorf("pin %d: %w", n, ErrPinBusy)
	}
	p.claimed[n] = true
	return nil
}

func (p *Provider) release(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.claimed, n)
}

// startCycle schedules the echo for a trigger that fell at now.
func (p *Provider) startCycle(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.triggers++
	p.armed = p.target.Fault != FaultDisconnected
	p.stuck = p.target.Fault == FaultStuckHigh

	cm := p.target.DistanceCM
	if p.target.VariationCM > 0 {
		cm += (rand.Float64() - 0.5) * 2 * p.target.VariationCM
	}
	if cm < 0 {
		cm = 0
	}

	p.rise = now.Add(p.target.Latency)
	p.fall = p.rise.Add(EchoWidth(cm))
}

func (p *Provider) echoHigh() bool {
	now := p.clock.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.armed || now.Before(p.rise) {
		return false
	}
	return p.stuck || now.Before(p.fall)
}

// EchoWidth is the echo pulse a sensor reports for a target cm away.
func EchoWidth(cm float64) time.Duration {
	return time.Duration(math.Round(cm / (hcsr04.SpeedOfSound / 2) * float64(time.Second)))
}

type triggerPin struct {
	p      *Provider
	n      int
	mu     sync.Mutex
	high   bool
	highAt time.Time
	closed bool
}

func (t *triggerPin) SetHigh() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.high {
		return
	}
	t.high = true
	t.highAt = t.p.clock.Now()
}

func (t *triggerPin) SetLow() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || !t.high {
		return
	}
	t.high = false

	// the sensor ignores pulses shorter than its minimum trigger width
	now := t.p.clock.Now()
	if now.Sub(t.highAt) >= hcsr04.TriggerPulse {
		t.p.startCycle(now)
	}
}

func (t *triggerPin) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.high = false
	t.p.release(t.n)
	return nil
}

type echoPin struct {
	p      *Provider
	n      int
	mu     sync.Mutex
	closed bool
}

func (e *echoPin) IsHigh() bool {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()

	return !closed && e.p.echoHigh()
}

func (e *echoPin) IsLow() bool {
	return !e.IsHigh()
}

func (e *echoPin) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.p.release(e.n)
	return nil
}
