package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the explicit configuration surface consumed by the execution
// engine. It is a plain value injected at Run boundaries; there is no
// ambient global to mutate.
type Config struct {
	// DefaultTimeout bounds a run when neither the per-call option nor the
	// effect's own trace timeout is set.
	DefaultTimeout time.Duration `envconfig:"EFFECTFLOW_DEFAULT_TIMEOUT" default:"5s"`

	// TelemetryEnabled gates all start/stop event emission.
	TelemetryEnabled bool `envconfig:"EFFECTFLOW_TELEMETRY_ENABLED" default:"true"`

	// TelemetryNamespace prefixes every emitted event name.
	TelemetryNamespace string `envconfig:"EFFECTFLOW_TELEMETRY_NAMESPACE" default:"effectflow"`

	// DefaultSpanName labels runs whose trace carries no span name.
	DefaultSpanName string `envconfig:"EFFECTFLOW_DEFAULT_SPAN_NAME" default:"effect"`
}

// Default returns the pure fallback configuration. No environment lookup.
func Default() Config {
	return Config{
		DefaultTimeout:     5 * time.Second,
		TelemetryEnabled:   true,
		TelemetryNamespace: "effectflow",
		DefaultSpanName:    "effect",
	}
}

// FromEnv reads the configuration from EFFECTFLOW_* environment variables,
// falling back to the same defaults as Default.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
