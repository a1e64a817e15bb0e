package ports

import (
	"context"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/domain"
)

// ReadingPublisher forwards stored readings to an external consumer
// This is a PORT - adapters (MQTT) will implement it
type ReadingPublisher interface {
	PublishReading(ctx context.Context, reading *domain.DistanceReading) error

	// Close releases any resources
	Close() error
}
