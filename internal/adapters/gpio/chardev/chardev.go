//go:build linux

// Package chardev hands out HC-SR04 pins as GPIO character device lines.
// The kernel enforces exclusive ownership of each requested line.
package chardev

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/warthog618/gpiod"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/hcsr04"
)

// DefaultChip is the first GPIO chip, the header bank on a Raspberry Pi.
const DefaultChip = "gpiochip0"

const consumer = "distance-service"

// Provider requests lines from one GPIO chip. The chip is opened on the
// first request.
type Provider struct {
	name string

	mu   sync.Mutex
	chip *gpiod.Chip
}

// New returns a Provider for the named chip ("gpiochip0", "/dev/gpiochip0").
func New(chip string) *Provider {
	if chip == "" {
		chip = DefaultChip
	}
	return &Provider{name: chip}
}

func (p *Provider) open() (*gpiod.Chip, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.chip != nil {
		return p.chip, nil
	}
	chip, err := gpiod.NewChip(p.name, gpiod.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.name, err)
	}
	p.chip = chip
	return chip, nil
}

// OutputPin requests line n as an output driven low.
func (p *Provider) OutputPin(n int) (hcsr04.OutputPin, error) {
	chip, err := p.open()
	if err != nil {
		return nil, err
	}
	line, err := chip.RequestLine(n, gpiod.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request line %d: %w", n, err)
	}
	return &outputLine{line: line, n: n}, nil
}

// InputPin requests line n as an input.
func (p *Provider) InputPin(n int) (hcsr04.InputPin, error) {
	chip, err := p.open()
	if err != nil {
		return nil, err
	}
	line, err := chip.RequestLine(n, gpiod.AsInput)
	if err != nil {
		return nil, fmt.Errorf("request line %d: %w", n, err)
	}
	return &inputLine{line: line, n: n}, nil
}

// Close closes the chip if it was opened. Lines must be closed first.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.chip == nil {
		return nil
	}
	err := p.chip.Close()
	p.chip = nil
	return err
}

type outputLine struct {
	line *gpiod.Line
	n    int
}

func (o *outputLine) SetHigh() { o.set(1) }
func (o *outputLine) SetLow()  { o.set(0) }

func (o *outputLine) set(v int) {
	if err := o.line.SetValue(v); err != nil {
		log.Error().Err(err).Int("line", o.n).Msg("failed to drive trigger")
	}
}

func (o *outputLine) Close() error {
	return o.line.Close()
}

type inputLine struct {
	line *gpiod.Line
	n    int
}

// IsHigh treats a line that cannot be read as low.
func (i *inputLine) IsHigh() bool {
	v, err := i.line.Value()
	if err != nil {
		log.Error().Err(err).Int("line", i.n).Msg("failed to read echo")
		return false
	}
	return v == 1
}

func (i *inputLine) IsLow() bool { return !i.IsHigh() }

func (i *inputLine) Close() error {
	return i.line.Close()
}
