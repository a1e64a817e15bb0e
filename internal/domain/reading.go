package domain

import (
	"math"
	"time"
)

// Usable range of an HC-SR04, in centimeters.
const (
	MinRangeCM = 2.0
	MaxRangeCM = 400.0
)

// DistanceReading represents a single distance measurement
// This is pure domain logic - no database, no gRPC, just business concepts
type DistanceReading struct {
	ID         int64
	DistanceCM float64
	Timestamp  time.Time
}

// NewDistanceReading creates a new reading with validation
func NewDistanceReading(cm float64) (*DistanceReading, error) {
	// Business rule: a distance is a finite, non-negative length
	if cm < 0 || math.IsNaN(cm) || math.IsInf(cm, 0) {
		return nil, ErrInvalidDistance
	}

	return &DistanceReading{
		DistanceCM: cm,
		Timestamp:  time.Now(),
	}, nil
}

// IsBelowRange returns true if the target is closer than the sensor can resolve
func (r *DistanceReading) IsBelowRange() bool {
	return r.DistanceCM < MinRangeCM
}

// IsInRange returns true if the reading falls inside the datasheet range
func (r *DistanceReading) IsInRange() bool {
	return r.DistanceCM >= MinRangeCM && r.DistanceCM <= MaxRangeCM
}

// IsBeyondRange returns true if the echo came back from further than the
// sensor is rated for
func (r *DistanceReading) IsBeyondRange() bool {
	return r.DistanceCM > MaxRangeCM
}

// RangeCategory returns human-readable category
func (r *DistanceReading) RangeCategory() string {
	if r.IsBelowRange() {
		return "Below Range"
	} else if r.IsInRange() {
		return "In Range"
	}
	return "Beyond Range"
}
