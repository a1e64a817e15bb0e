package ports

import (
	"context"
)

// DistanceSensor defines how to read distances
// This is a PORT - adapters (HC-SR04, Mock) will implement it
type DistanceSensor interface {
	// ReadDistance returns the current distance in centimeters
	ReadDistance(ctx context.Context) (float64, error)

	// Close releases any resources
	Close() error
}
