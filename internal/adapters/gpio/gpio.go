// Package gpio selects the pin provider an HC-SR04 is wired through.
package gpio

import (
	"fmt"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/gpio/chardev"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/gpio/gpiomem"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/gpio/periph"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/adapters/gpio/sim"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/hcsr04"
)

// Driver names accepted by Open.
const (
	DriverSim     = "sim"
	DriverPeriph  = "periph"
	DriverGpiod   = "gpiod"
	DriverGpiomem = "rpio"
)

// Provider is an hcsr04.Provider that owns hardware until closed.
type Provider interface {
	hcsr04.Provider
	Close() error
}

// Options picks and configures a driver.
type Options struct {
	Driver string
	Chip   string     // gpiod only
	Sim    sim.Target // sim only
}

// Open returns the provider named by opts.Driver. Hardware drivers defer
// touching the device until the first pin is claimed.
func Open(opts Options) (Provider, error) {
	switch opts.Driver {
	case DriverSim, "":
		return sim.New(opts.Sim), nil
	case DriverPeriph:
		return periph.New(), nil
	case DriverGpiod:
		return chardev.New(opts.Chip), nil
	case DriverGpiomem:
		return gpiomem.New(), nil
	default:
		return nil, fmt.Errorf("unknown GPIO driver %q", opts.Driver)
	}
}
