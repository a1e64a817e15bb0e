// Package hcsr04 drives an HC-SR04 class ultrasonic range finder over two
// GPIO lines.
//
// A measurement pulses the trigger line high for 10µs, waits for the echo
// line to rise and then times how long it stays high. Both waits are bounded
// by the sensor timeout. The echo width covers the round trip, so the
// distance is
//
//	distance_cm = pulse_seconds * SpeedOfSound / 2
//
// The package does not log, retry or filter. A Sensor is not safe for
// concurrent use; callers sharing one must serialize Distance calls.
package hcsr04
