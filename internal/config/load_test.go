package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Generation.MinDuration)
	assert.Equal(t, 8*time.Second, cfg.Generation.MaxDuration)
	assert.Equal(t, 500*time.Millisecond, cfg.Generation.StepInterval)
	assert.Equal(t, 4, cfg.Generation.MaxConcurrent)
	assert.Equal(t, "generated_audio", cfg.Storage.AudioDir)
	assert.Equal(t, 24*time.Hour, cfg.Cleanup.Retention)
	assert.Equal(t, time.Hour, cfg.Cleanup.Interval)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WAVEFORGE_SERVER_PORT", "8080")
	t.Setenv("WAVEFORGE_SERVER_LOG_LEVEL", "debug")
	t.Setenv("WAVEFORGE_GENERATION_MAX_DURATION", "12s")
	t.Setenv("WAVEFORGE_CLEANUP_RETENTION", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 12*time.Second, cfg.Generation.MaxDuration)
	assert.Equal(t, time.Hour, cfg.Cleanup.Retention)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "WAVEFORGE_SERVER_PORT", "70000"},
		{"unknown log level", "WAVEFORGE_SERVER_LOG_LEVEL", "verbose"},
		{"max below min duration", "WAVEFORGE_GENERATION_MAX_DURATION", "1s"},
		{"zero workers", "WAVEFORGE_GENERATION_MAX_CONCURRENT", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
