package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/quentinrf/plant-monitor/services/distance-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/distance-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/distance-service/pkg/distancepb"
)

// DistanceServiceHandler implements the gRPC DistanceService
type DistanceServiceHandler struct {
	distancepb.UnimplementedDistanceServiceServer
	repo   domain.ReadingRepository
	sensor ports.DistanceSensor
}

// NewDistanceServiceHandler creates a new gRPC handler
func NewDistanceServiceHandler(repo domain.ReadingRepository, sensor ports.DistanceSensor) *DistanceServiceHandler {
	return &DistanceServiceHandler{
		repo:   repo,
		sensor: sensor,
	}
}

// GetCurrentDistance returns the most recent reading
func (h *DistanceServiceHandler) GetCurrentDistance(ctx context.Context) (*distancepb.Reading, error) {
	log.Info().Msg("GetCurrentDistance called")

	reading, err := h.repo.GetLatestReading(ctx)
	if errors.Is(err, domain.ErrReadingNotFound) {
		// No readings yet - read sensor now
		log.Info().Msg("no readings in database, reading sensor")
		return h.measure(ctx)
	} else if err != nil {
		log.Error().Err(err).Msg("failed to get latest reading")
		return nil, status.Error(codes.Internal, "failed to get reading")
	}

	return convertReadingToProto(reading), nil
}

// Measure triggers the sensor now, stores the result and returns it
func (h *DistanceServiceHandler) Measure(ctx context.Context) (*distancepb.Reading, error) {
	log.Info().Msg("Measure called")
	return h.measure(ctx)
}

func (h *DistanceServiceHandler) measure(ctx context.Context) (*distancepb.Reading, error) {
	cm, err := h.sensor.ReadDistance(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read sensor")
		switch {
		case errors.Is(err, domain.ErrSensorUnavailable):
			return nil, status.Error(codes.Unavailable, err.Error())
		case errors.Is(err, context.Canceled):
			return nil, status.Error(codes.Canceled, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			return nil, status.Error(codes.DeadlineExceeded, err.Error())
		}
		return nil, status.Error(codes.Internal, "failed to read sensor")
	}

	reading, err := domain.NewDistanceReading(cm)
	if err != nil {
		log.Error().Err(err).Float64("distance_cm", cm).Msg("failed to create reading")
		return nil, status.Error(codes.Internal, "failed to create reading")
	}

	// Save for next time
	if err := h.repo.SaveReading(ctx, reading); err != nil {
		log.Error().Err(err).Msg("failed to save reading")
		// Don't fail - we still have the reading
	}

	return convertReadingToProto(reading), nil
}

// GetHistory returns readings within [start, end) with statistics
func (h *DistanceServiceHandler) GetHistory(ctx context.Context, req *distancepb.HistoryRequest) (*distancepb.History, error) {
	log.Info().
		Int64("start", req.StartTime).
		Int64("end", req.EndTime).
		Msg("GetHistory called")

	if req.EndTime < req.StartTime {
		return nil, status.Error(codes.InvalidArgument, "end_time is before start_time")
	}

	start := time.Unix(req.StartTime, 0)
	end := time.Unix(req.EndTime, 0)

	readings, err := h.repo.GetReadingsInRange(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get readings")
		return nil, status.Error(codes.Internal, "failed to get readings")
	}

	pbReadings := make([]*distancepb.Reading, len(readings))
	for i, r := range readings {
		pbReadings[i] = convertReadingToProto(r)
	}

	stats := calculateStatistics(readings)

	return &distancepb.History{
		Readings:  pbReadings,
		AverageCM: stats.average,
		MinCM:     stats.min,
		MaxCM:     stats.max,
	}, nil
}

// RecordReading manually records a reading (useful for testing)
func (h *DistanceServiceHandler) RecordReading(ctx context.Context, req *distancepb.RecordRequest) (*distancepb.Reading, error) {
	log.Info().Float64("distance_cm", req.DistanceCM).Msg("RecordReading called")

	reading, err := domain.NewDistanceReading(req.DistanceCM)
	if err != nil {
		log.Error().Err(err).Msg("invalid distance value")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := h.repo.SaveReading(ctx, reading); err != nil {
		log.Error().Err(err).Msg("failed to save reading")
		return nil, status.Error(codes.Internal, "failed to save reading")
	}

	return convertReadingToProto(reading), nil
}

// convertReadingToProto converts domain model to its wire view
func convertReadingToProto(r *domain.DistanceReading) *distancepb.Reading {
	return &distancepb.Reading{
		ID:         r.ID,
		DistanceCM: r.DistanceCM,
		Timestamp:  r.Timestamp.Unix(),
		Category:   r.RangeCategory(),
	}
}

// statistics holds calculated statistics
type statistics struct {
	average float64
	min     float64
	max     float64
}

// calculateStatistics computes stats for a set of readings
func calculateStatistics(readings []*domain.DistanceReading) statistics {
	if len(readings) == 0 {
		return statistics{}
	}

	var sum float64
	min := readings[0].DistanceCM
	max := readings[0].DistanceCM

	for _, r := range readings {
		sum += r.DistanceCM
		if r.DistanceCM < min {
			min = r.DistanceCM
		}
		if r.DistanceCM > max {
			max = r.DistanceCM
		}
	}

	return statistics{
		average: sum / float64(len(readings)),
		min:     min,
		max:     max,
	}
}
