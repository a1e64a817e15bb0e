package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/domain"
)

// DefaultRetention is how long readings are kept when no retention is given
const DefaultRetention = 30 * 24 * time.Hour

// Recorder handles periodic sensor reading and storage
type Recorder struct {
	sensor     DistanceSensor
	repo       domain.ReadingRepository
	publishers []ReadingPublisher
	interval   time.Duration
	retention  time.Duration
}

// NewRecorder creates a new background recorder
func NewRecorder(sensor DistanceSensor, repo domain.ReadingRepository, interval time.Duration, publishers ...ReadingPublisher) *Recorder {
	return &Recorder{
		sensor:     sensor,
		repo:       repo,
		publishers: publishers,
		interval:   interval,
		retention:  DefaultRetention,
	}
}

// SetRetention changes how long readings are kept. Non-positive values are ignored.
func (r *Recorder) SetRetention(d time.Duration) {
	if d > 0 {
		r.retention = d
	}
}

// Start begins periodic sensor reading
// This runs in a goroutine until context is cancelled
func (r *Recorder) Start(ctx context.Context) {
	log.Info().
		Dur("interval", r.interval).
		Dur("retention", r.retention).
		Int("publishers", len(r.publishers)).
		Msg("starting background recorder")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(24 * time.Hour)
	defer cleanupTicker.Stop()

	// Record immediately on start
	r.recordOnce(ctx)

	for {
		select {
		case <-ticker.C:
			r.recordOnce(ctx)

		case <-cleanupTicker.C:
			r.cleanup(ctx)

		case <-ctx.Done():
			log.Info().Msg("stopping background recorder")
			return
		}
	}
}

// recordOnce reads sensor, saves to repository and publishes the reading
func (r *Recorder) recordOnce(ctx context.Context) {
	log.Debug().Msg("reading sensor")

	cm, err := r.sensor.ReadDistance(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read sensor")
		return
	}

	reading, err := domain.NewDistanceReading(cm)
	if err != nil {
		log.Error().Err(err).Msg("failed to create reading")
		return
	}

	if err := r.repo.SaveReading(ctx, reading); err != nil {
		log.Error().Err(err).Msg("failed to save reading")
		return
	}

	for _, p := range r.publishers {
		if err := p.PublishReading(ctx, reading); err != nil {
			log.Warn().Err(err).Int64("id", reading.ID).Msg("failed to publish reading")
		}
	}

	log.Info().
		Float64("distance_cm", cm).
		Str("category", reading.RangeCategory()).
		Msg("recorded distance reading")
}

func (r *Recorder) cleanup(ctx context.Context) {
	if err := r.repo.DeleteOldReadings(ctx, r.retention); err != nil {
		log.Error().Err(err).Msg("failed to delete old readings")
		return
	}
	log.Info().Dur("retention", r.retention).Msg("deleted expired readings")
}
