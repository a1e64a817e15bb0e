//go:build !linux

package chardev

import (
	"errors"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/hcsr04"
)

// DefaultChip is the first GPIO chip, the header bank on a Raspberry Pi.
const DefaultChip = "gpiochip0"

var errUnsupported = errors.New("GPIO character devices are only available on linux")

// Provider always fails outside linux.
type Provider struct{}

// New returns a Provider whose claims fail on this platform. The chip name
// is accepted for parity with the linux build and ignored.
func New(_ string) *Provider {
	return &Provider{}
}

// OutputPin always fails with errUnsupported.
func (p *Provider) OutputPin(n int) (hcsr04.OutputPin, error) {
	return nil, errUnsupported
}

// InputPin always fails with errUnsupported.
func (p *Provider) InputPin(n int) (hcsr04.InputPin, error) {
	return nil, errUnsupported
}

// Close has nothing to release.
func (p *Provider) Close() error {
	return nil
}
