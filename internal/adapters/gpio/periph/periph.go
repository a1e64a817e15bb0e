// Package periph hands out HC-SR04 pins through periph.io's host drivers.
// Pins are addressed by BCM number.
package periph

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/hcsr04"
)

var errPinBusy = errors.New("pin already in use")

// Provider claims pins from the periph registry. The host drivers are
// loaded on the first claim.
type Provider struct {
	once    sync.Once
	initErr error

	mu      sync.Mutex
	claimed map[int]gpio.PinIO
}

// New returns a Provider; no hardware is touched until a pin is claimed.
func New() *Provider {
	return &Provider{claimed: make(map[int]gpio.PinIO)}
}

func (p *Provider) init() error {
	p.once.Do(func() {
		if _, err := host.Init(); err != nil {
			p.initErr = fmt.Errorf("periph host init: %w", err)
		}
	})
	return p.initErr
}

func (p *Provider) claim(n int) (gpio.PinIO, error) {
	if err := p.init(); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("GPIO%d", n)
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO pin named %s", name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.claimed[n]; busy {
		return nil, fmt.Errorf("%s: %w", name, errPinBusy)
	}
	p.claimed[n] = pin
	return pin, nil
}

func (p *Provider) release(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.claimed, n)
}

// OutputPin claims GPIOn as an output driven low.
func (p *Provider) OutputPin(n int) (hcsr04.OutputPin, error) {
	pin, err := p.claim(n)
	if err != nil {
		return nil, err
	}
	if err := pin.Out(gpio.Low); err != nil {
		p.release(n)
		return nil, fmt.Errorf("configure %s as output: %w", pin, err)
	}
	return &outputPin{p: p, n: n, pin: pin}, nil
}

// InputPin claims GPIOn as a pulled-down input.
func (p *Provider) InputPin(n int) (hcsr04.InputPin, error) {
	pin, err := p.claim(n)
	if err != nil {
		return nil, err
	}
	if err := pin.In(gpio.PullDown, gpio.NoEdge); err != nil {
		p.release(n)
		return nil, fmt.Errorf("configure %s as input: %w", pin, err)
	}
	return &inputPin{p: p, n: n, pin: pin}, nil
}

// Close halts every pin still claimed.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for n, pin := range p.claimed {
		errs = append(errs, pin.Halt())
		delete(p.claimed, n)
	}
	return errors.Join(errs...)
}

type outputPin struct {
	p   *Provider
	n   int
	pin gpio.PinIO
}

func (o *outputPin) SetHigh() { o.set(gpio.High) }
func (o *outputPin) SetLow()  { o.set(gpio.Low) }

func (o *outputPin) set(l gpio.Level) {
	if err := o.pin.Out(l); err != nil {
		log.Error().Err(err).Str("pin", o.pin.Name()).Msg("failed to drive trigger")
	}
}

func (o *outputPin) Close() error {
	o.p.release(o.n)
	return o.pin.Halt()
}

type inputPin struct {
	p   *Provider
	n   int
	pin gpio.PinIO
}

func (i *inputPin) IsHigh() bool { return i.pin.Read() == gpio.High }
func (i *inputPin) IsLow() bool  { return i.pin.Read() == gpio.Low }

func (i *inputPin) Close() error {
	i.p.release(i.n)
	return i.pin.Halt()
}
