package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"REWIND_CONFIG", "PORT", "REWIND_DB_PATH", "LOG_LEVEL", "AUTO_CAPTURE",
		"CAPTURE_INTERVAL_SECONDS", "MAX_ENTRIES", "ENABLE_OCR", "SEED_SAMPLES",
		"SEED_FILE", "TIMEZONE", "REWIND_WATCH_DIRS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8742, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.AutoCapture)
	assert.Equal(t, 5, cfg.CaptureInterval)
	assert.Equal(t, 1000, cfg.MaxEntries)
	assert.True(t, cfg.SeedSamples)
	assert.NotEmpty(t, cfg.DBPath)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("REWIND_DB_PATH", "/tmp/rewind.db")
	t.Setenv("AUTO_CAPTURE", "false")
	t.Setenv("MAX_ENTRIES", "50")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("CAPTURE_INTERVAL_SECONDS", "not-a-number")
	t.Setenv("REWIND_WATCH_DIRS", " /tmp/a, ,/tmp/b ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/tmp/rewind.db", cfg.DBPath)
	assert.False(t, cfg.AutoCapture)
	assert.Equal(t, 50, cfg.MaxEntries)
	assert.Equal(t, 5, cfg.CaptureInterval)
	assert.Equal(t, []string{"/tmp/a", "/tmp/b"}, cfg.WatchDirs)

	settings := cfg.Settings()
	assert.False(t, settings.AutoCapture)
	assert.Equal(t, 50, settings.MaxEntries)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "rewind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 7000
maxEntries: 20
captureIntervalSeconds: 8
seedSamples: false
timezone: UTC
`), 0o644))
	t.Setenv("REWIND_CONFIG", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7100, cfg.Port)
	assert.Equal(t, 20, cfg.MaxEntries)
	assert.Equal(t, 8, cfg.CaptureInterval)
	assert.False(t, cfg.SeedSamples)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"zero max entries", map[string]string{"MAX_ENTRIES": "0"}},
		{"zero interval", map[string]string{"CAPTURE_INTERVAL_SECONDS": "0"}},
		{"unknown zone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{"missing file", map[string]string{"REWIND_CONFIG": "/does/not/exist.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o644))
	t.Setenv("REWIND_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}
