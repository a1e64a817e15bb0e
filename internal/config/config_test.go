package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var keys = []string{
	"PORT", "RECORD_INTERVAL", "RETENTION", "REPO_TYPE", "DB_PATH", "SENSOR_TYPE", "LOG_LEVEL",
	"GPIO_DRIVER", "GPIO_CHIP", "TRIGGER_PIN", "ECHO_PIN", "ECHO_TIMEOUT",
	"MQTT_BROKER", "MQTT_TOPIC", "MQTT_CLIENT_ID", "TLS_CERT", "TLS_KEY", "TLS_CA",
}

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Port != "50051" {
		t.Errorf("expected port 50051, got %q", cfg.Port)
	}
	if cfg.RecordInterval != 5*time.Minute {
		t.Errorf("expected 5m interval, got %v", cfg.RecordInterval)
	}
	if cfg.Retention != 720*time.Hour {
		t.Errorf("expected 720h retention, got %v", cfg.Retention)
	}
	if cfg.RepoType != "memory" || cfg.DBPath != "./distance.db" {
		t.Errorf("unexpected repository settings: %q %q", cfg.RepoType, cfg.DBPath)
	}
	if cfg.SensorType != "mock" || cfg.GPIODriver != "sim" || cfg.GPIOChip != "gpiochip0" {
		t.Errorf("unexpected sensor settings: %q %q %q", cfg.SensorType, cfg.GPIODriver, cfg.GPIOChip)
	}
	if cfg.TriggerPin != 23 || cfg.EchoPin != 24 {
		t.Errorf("expected pins 23/24, got %d/%d", cfg.TriggerPin, cfg.EchoPin)
	}
	if cfg.EchoTimeout != 100*time.Millisecond {
		t.Errorf("expected 100ms echo timeout, got %v", cfg.EchoTimeout)
	}
	if cfg.MQTTBroker != "" || cfg.MQTTTopic != "plant-monitor/distance" {
		t.Errorf("unexpected MQTT settings: %q %q", cfg.MQTTBroker, cfg.MQTTTopic)
	}
	if cfg.TLS.Enabled() {
		t.Error("expected TLS to be disabled")
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "6000")
	t.Setenv("RECORD_INTERVAL", "30s")
	t.Setenv("REPO_TYPE", "sqlite")
	t.Setenv("SENSOR_TYPE", "hcsr04")
	t.Setenv("GPIO_DRIVER", "gpiod")
	t.Setenv("TRIGGER_PIN", "17")
	t.Setenv("ECHO_PIN", "27")
	t.Setenv("ECHO_TIMEOUT", "25ms")
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("TLS_CERT", "/certs/distance.crt")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Port != "6000" || cfg.RecordInterval != 30*time.Second || cfg.RepoType != "sqlite" {
		t.Errorf("unexpected service settings: %+v", cfg)
	}
	if cfg.SensorType != "hcsr04" || cfg.GPIODriver != "gpiod" {
		t.Errorf("unexpected sensor settings: %q %q", cfg.SensorType, cfg.GPIODriver)
	}
	if cfg.TriggerPin != 17 || cfg.EchoPin != 27 || cfg.EchoTimeout != 25*time.Millisecond {
		t.Errorf("unexpected pin settings: %d %d %v", cfg.TriggerPin, cfg.EchoPin, cfg.EchoTimeout)
	}
	if cfg.MQTTBroker != "tcp://broker:1883" {
		t.Errorf("expected broker override, got %q", cfg.MQTTBroker)
	}
	if !cfg.TLS.Enabled() {
		t.Error("expected TLS to be enabled")
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesKeepDefaults(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(Config) bool
	}{
		{"RECORD_INTERVAL", "often", func(c Config) bool { return c.RecordInterval == 5*time.Minute }},
		{"RETENTION", "-1h", func(c Config) bool { return c.Retention == 720*time.Hour }},
		{"ECHO_TIMEOUT", "0s", func(c Config) bool { return c.EchoTimeout == 100*time.Millisecond }},
		{"TRIGGER_PIN", "GPIO23", func(c Config) bool { return c.TriggerPin == 23 }},
		{"ECHO_PIN", "24.5", func(c Config) bool { return c.EchoPin == 24 }},
		{"LOG_LEVEL", "loud", func(c Config) bool { return c.LogLevel == zerolog.InfoLevel }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if cfg := Load(); !tt.check(cfg) {
				t.Errorf("%s=%q should keep the default, got %+v", tt.key, tt.value, cfg)
			}
		})
	}
}
