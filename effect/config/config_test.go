package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effectflow_go/effect/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, 5*time.Second, cfg.DefaultTimeout)
	require.True(t, cfg.TelemetryEnabled)
	require.Equal(t, "effectflow", cfg.TelemetryNamespace)
	require.Equal(t, "effect", cfg.DefaultSpanName)
}

func TestFromEnv_FallsBackToDefaults(t *testing.T) {
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestFromEnv_ReadsOverrides(t *testing.T) {
	t.Setenv("EFFECTFLOW_DEFAULT_TIMEOUT", "250ms")
	t.Setenv("EFFECTFLOW_TELEMETRY_ENABLED", "false")
	t.Setenv("EFFECTFLOW_TELEMETRY_NAMESPACE", "myapp")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, cfg.DefaultTimeout)
	require.False(t, cfg.TelemetryEnabled)
	require.Equal(t, "myapp", cfg.TelemetryNamespace)
	require.Equal(t, "effect", cfg.DefaultSpanName)
}
