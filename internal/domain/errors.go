package domain

import "errors"

var (
	// ErrInvalidDistance indicates distance value is invalid
	ErrInvalidDistance = errors.New("distance must be a finite, non-negative value")

	// ErrReadingNotFound indicates requested reading doesn't exist
	ErrReadingNotFound = errors.New("reading not found")

	// ErrSensorUnavailable indicates sensor cannot be read
	ErrSensorUnavailable = errors.New("sensor unavailable")
)
