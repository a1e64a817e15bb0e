// Package config reads the service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/distance-service/pkg/tlsconfig"
)

// Config holds application configuration
type Config struct {
	Port           string
	RecordInterval time.Duration
	Retention      time.Duration
	RepoType       string // "memory" | "sqlite"
	DBPath         string // SQLite database file path (used when RepoType=sqlite)
	SensorType     string // "mock" | "hcsr04"
	LogLevel       zerolog.Level

	GPIODriver  string // "sim" | "periph" | "gpiod" | "rpio"
	GPIOChip    string // character device, gpiod driver only
	TriggerPin  int
	EchoPin     int
	EchoTimeout time.Duration

	MQTTBroker   string // empty disables publishing
	MQTTTopic    string
	MQTTClientID string

	TLS tlsconfig.Files
}

// Load reads configuration from environment variables. Values that cannot
// be parsed keep their default and are reported with a warning.
func Load() Config {
	return Config{
		Port:           str("PORT", "50051"),
		RecordInterval: duration("RECORD_INTERVAL", 5*time.Minute),
		Retention:      duration("RETENTION", 30*24*time.Hour),
		RepoType:       str("REPO_TYPE", "memory"),
		DBPath:         str("DB_PATH", "./distance.db"),
		SensorType:     str("SENSOR_TYPE", "mock"),
		LogLevel:       level("LOG_LEVEL", zerolog.InfoLevel),

		GPIODriver:  str("GPIO_DRIVER", "sim"),
		GPIOChip:    str("GPIO_CHIP", "gpiochip0"),
		TriggerPin:  integer("TRIGGER_PIN", 23),
		EchoPin:     integer("ECHO_PIN", 24),
		EchoTimeout: duration("ECHO_TIMEOUT", 100*time.Millisecond),

		MQTTBroker:   os.Getenv("MQTT_BROKER"),
		MQTTTopic:    str("MQTT_TOPIC", "plant-monitor/distance"),
		MQTTClientID: str("MQTT_CLIENT_ID", "distance-service"),

		TLS: tlsconfig.Files{
			Cert: os.Getenv("TLS_CERT"),
			Key:  os.Getenv("TLS_KEY"),
			CA:   os.Getenv("TLS_CA"),
		},
	}
}

func str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", v).Dur("default", def).Msg("invalid duration, using default")
		return def
	}
	return d
}

func integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return n
}

func level(key string, def zerolog.Level) zerolog.Level {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	l, err := zerolog.ParseLevel(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Stringer("default", def).Msg("invalid log level, using default")
		return def
	}
	return l
}
