package hcsr04

// Option configures a Sensor.
type Option func(*Sensor)

// WithClock replaces the system clock. A nil clock is ignored.
func WithClock(clock Clock) Option {
	return func(s *Sensor) {
		if clock != nil {
			s.clock = clock
		}
	}
}
