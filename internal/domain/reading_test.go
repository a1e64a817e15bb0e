package domain

import (
	"math"
	"testing"
)

func TestNewDistanceReading(t *testing.T) {
	tests := []struct {
		name    string
		cm      float64
		wantErr bool
	}{
		{
			name:    "valid reading",
			cm:      17.15,
			wantErr: false,
		},
		{
			name:    "zero distance is valid",
			cm:      0.0,
			wantErr: false,
		},
		{
			name:    "negative distance is invalid",
			cm:      -1.0,
			wantErr: true,
		},
		{
			name:    "NaN is invalid",
			cm:      math.NaN(),
			wantErr: true,
		},
		{
			name:    "infinity is invalid",
			cm:      math.Inf(1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, err := NewDistanceReading(tt.cm)

			if tt.wantErr {
				if err != ErrInvalidDistance {
					t.Errorf("expected ErrInvalidDistance, got %v", err)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if reading.DistanceCM != tt.cm {
				t.Errorf("expected distance %v, got %v", tt.cm, reading.DistanceCM)
			}
			if reading.Timestamp.IsZero() {
				t.Error("expected timestamp to be set")
			}
		})
	}
}

func TestDistanceReading_IsInRange(t *testing.T) {
	tests := []struct {
		cm   float64
		want bool
	}{
		{cm: 1.99, want: false},
		{cm: 2, want: true},
		{cm: 150, want: true},
		{cm: 400, want: true},
		{cm: 400.01, want: false},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			reading, _ := NewDistanceReading(tt.cm)
			if got := reading.IsInRange(); got != tt.want {
				t.Errorf("IsInRange() = %v, want %v for distance %v", got, tt.want, tt.cm)
			}
		})
	}
}

func TestDistanceReading_RangeCategory(t *testing.T) {
	tests := []struct {
		cm   float64
		want string
	}{
		{cm: 0.5, want: "Below Range"},
		{cm: 17.15, want: "In Range"},
		{cm: 857.5, want: "Beyond Range"},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			reading, _ := NewDistanceReading(tt.cm)
			if got := reading.RangeCategory(); got != tt.want {
				t.Errorf("RangeCategory() = %v, want %v for distance %v", got, tt.want, tt.cm)
			}
		})
	}
}
