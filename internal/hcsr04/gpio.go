package hcsr04

// Provider hands out exclusively owned GPIO pins by number.
type Provider interface {
	// OutputPin claims pin n and configures it as an output.
	OutputPin(n int) (OutputPin, error)

	// InputPin claims pin n and configures it as an input.
	InputPin(n int) (InputPin, error)
}

// OutputPin is a claimed output line.
type OutputPin interface {
	SetHigh()
	SetLow()

	// Close releases the pin back to its provider.
	Close() error
}

// InputPin is a claimed input line.
type InputPin interface {
	IsHigh() bool
	IsLow() bool

	// Close releases the pin back to its provider.
	Close() error
}
