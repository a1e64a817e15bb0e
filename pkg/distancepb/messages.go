// Package distancepb is the wire surface of distance.v1.DistanceService.
//
// Requests and responses travel as google.protobuf.Struct (or Empty); the
// types here are their typed views. Field names are snake_case on the wire.
package distancepb

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Reading is one stored distance measurement.
type Reading struct {
	ID         int64
	DistanceCM float64
	Timestamp  int64 // unix seconds
	Category   string
}

// HistoryRequest selects readings with StartTime <= timestamp < EndTime,
// both in unix seconds.
type HistoryRequest struct {
	StartTime int64
	EndTime   int64
}

// History is a window of readings with summary statistics.
type History struct {
	Readings  []*Reading
	AverageCM float64
	MinCM     float64
	MaxCM     float64
}

// RecordRequest stores a manually supplied distance.
type RecordRequest struct {
	DistanceCM float64
}

func (r *Reading) fields() map[string]any {
	return map[string]any{
		"id":          r.ID,
		"distance_cm": r.DistanceCM,
		"timestamp":   r.Timestamp,
		"category":    r.Category,
	}
}

// Struct encodes r for the wire.
func (r *Reading) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(r.fields())
}

// ReadingFromStruct decodes a Reading.
func ReadingFromStruct(s *structpb.Struct) (*Reading, error) {
	d := decoder{s: s}
	r := &Reading{
		ID:         int64(d.number("id", false)),
		DistanceCM: d.number("distance_cm", true),
		Timestamp:  int64(d.number("timestamp", false)),
		Category:   d.str("category"),
	}
	if d.err != nil {
		return nil, fmt.Errorf("decode reading: %w", d.err)
	}
	return r, nil
}

// Struct encodes h for the wire.
func (h *History) Struct() (*structpb.Struct, error) {
	readings := make([]any, len(h.Readings))
	for i, r := range h.Readings {
		readings[i] = r.fields()
	}
	return structpb.NewStruct(map[string]any{
		"readings":   readings,
		"average_cm": h.AverageCM,
		"min_cm":     h.MinCM,
		"max_cm":     h.MaxCM,
	})
}

// HistoryFromStruct decodes a History.
func HistoryFromStruct(s *structpb.Struct) (*History, error) {
	d := decoder{s: s}
	h := &History{
		AverageCM: d.number("average_cm", false),
		MinCM:     d.number("min_cm", false),
		MaxCM:     d.number("max_cm", false),
	}
	if d.err != nil {
		return nil, fmt.Errorf("decode history: %w", d.err)
	}

	for i, v := range s.GetFields()["readings"].GetListValue().GetValues() {
		rs := v.GetStructValue()
		if rs == nil {
			return nil, fmt.Errorf("decode history: reading %d is not an object", i)
		}
		r, err := ReadingFromStruct(rs)
		if err != nil {
			return nil, fmt.Errorf("decode history: reading %d: %w", i, err)
		}
		h.Readings = append(h.Readings, r)
	}
	return h, nil
}

// Struct encodes r for the wire.
func (r *HistoryRequest) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"start_time": r.StartTime,
		"end_time":   r.EndTime,
	})
}

// HistoryRequestFromStruct decodes a HistoryRequest. Missing times are zero.
func HistoryRequestFromStruct(s *structpb.Struct) (*HistoryRequest, error) {
	d := decoder{s: s}
	r := &HistoryRequest{
		StartTime: int64(d.number("start_time", false)),
		EndTime:   int64(d.number("end_time", false)),
	}
	if d.err != nil {
		return nil, fmt.Errorf("decode history request: %w", d.err)
	}
	return r, nil
}

// Struct encodes r for the wire.
func (r *RecordRequest) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"distance_cm": r.DistanceCM,
	})
}

// RecordRequestFromStruct decodes a RecordRequest. distance_cm is required.
func RecordRequestFromStruct(s *structpb.Struct) (*RecordRequest, error) {
	d := decoder{s: s}
	r := &RecordRequest{DistanceCM: d.number("distance_cm", true)}
	if d.err != nil {
		return nil, fmt.Errorf("decode record request: %w", d.err)
	}
	return r, nil
}

// decoder keeps the first error so fields can be read in one pass.
type decoder struct {
	s   *structpb.Struct
	err error
}

func (d *decoder) number(key string, required bool) float64 {
	if d.err != nil {
		return 0
	}
	v, ok := d.s.GetFields()[key]
	if !ok {
		if required {
			d.err = fmt.Errorf("missing field %q", key)
		}
		return 0
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		d.err = fmt.Errorf("field %q is not a number", key)
		return 0
	}
	return n.NumberValue
}

func (d *decoder) str(key string) string {
	if d.err != nil {
		return ""
	}
	v, ok := d.s.GetFields()[key]
	if !ok {
		return ""
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		d.err = fmt.Errorf("field %q is not a string", key)
		return ""
	}
	return sv.StringValue
}
