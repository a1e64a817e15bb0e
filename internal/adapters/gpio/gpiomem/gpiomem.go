// Package gpiomem hands out HC-SR04 pins by mapping the Raspberry Pi GPIO
// registers through go-rpio. Pins are addressed by BCM number.
package gpiomem

import (
	"errors"
	"fmt"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/hcsr04"
)

// MaxPin is the highest BCM GPIO on a 40-pin header.
const MaxPin = 27

var (
	errInvalidPin = errors.New("invalid pin number")
	errPinBusy    = errors.New("pin already in use")
)

// Provider claims pins from the memory mapped GPIO block, which is mapped
// on the first claim and unmapped by Close.
type Provider struct {
	mu      sync.Mutex
	mapped  bool
	claimed map[int]bool
}

// New returns a Provider; no hardware is touched until a pin is claimed.
func New() *Provider {
	return &Provider{claimed: make(map[int]bool)}
}

func (p *Provider) claim(n int) (rpio.Pin, error) {
	if n < 0 || n > MaxPin {
		return 0, fmt.Errorf("pin %d: %w", n, errInvalidPin)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.claimed[n] {
		return 0, fmt.Errorf("pin %d: %w", n, errPinBusy)
	}
	if !p.mapped {
		if err := rpio.Open(); err != nil {
			return 0, fmt.Errorf("map gpio memory: %w", err)
		}
		p.mapped = true
	}
	p.claimed[n] = true
	return rpio.Pin(uint8(n)), nil
}

func (p *Provider) release(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.claimed, n)
}

// OutputPin claims pin n as an output driven low.
func (p *Provider) OutputPin(n int) (hcsr04.OutputPin, error) {
	pin, err := p.claim(n)
	if err != nil {
		return nil, err
	}
	pin.Output()
	pin.Low()
	return &outputPin{p: p, n: n, pin: pin}, nil
}

// InputPin claims pin n as a pulled-down input.
func (p *Provider) InputPin(n int) (hcsr04.InputPin, error) {
	pin, err := p.claim(n)
	if err != nil {
		return nil, err
	}
	pin.Input()
	pin.PullDown()
	return &inputPin{p: p, n: n, pin: pin}, nil
}

// Close unmaps the GPIO block. Pins handed out earlier must not be used
// afterwards.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.claimed = make(map[int]bool)
	if !p.mapped {
		return nil
	}
	p.mapped = false
	return rpio.Close()
}

type outputPin struct {
	p   *Provider
	n   int
	pin rpio.Pin
}

func (o *outputPin) SetHigh() { o.pin.High() }
func (o *outputPin) SetLow()  { o.pin.Low() }

func (o *outputPin) Close() error {
	o.pin.Low()
	o.p.release(o.n)
	return nil
}

type inputPin struct {
	p   *Provider
	n   int
	pin rpio.Pin
}

func (i *inputPin) IsHigh() bool { return i.pin.Read() == rpio.High }
func (i *inputPin) IsLow() bool  { return i.pin.Read() == rpio.Low }

func (i *inputPin) Close() error {
	i.p.release(i.n)
	return nil
}
