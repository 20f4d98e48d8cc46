package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultRegistryURL, cfg.Registry.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, 1, cfg.Registry.Retries)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, DefaultLogFile, cfg.Log.File)
	assert.Nil(t, cfg.Intake.ExportCommand)
}

func TestFromEnvBlankExportCommand(t *testing.T) {
	t.Setenv("COVRECORD_EID_EXPORT_COMMAND", "   ")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Nil(t, cfg.Intake.ExportCommand)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("COVRECORD_REGISTRY_URL", "http://localhost:9999/search")
	t.Setenv("COVRECORD_REGISTRY_TIMEOUT", "2s")
	t.Setenv("COVRECORD_MAX_ATTEMPTS", "3")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("COVRECORD_EID_EXPORT_COMMAND", "eid-viewer --export  /tmp/patient.eid")
	t.Setenv("COVRECORD_METRICS_ADDR", " :9090 ")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/search", cfg.Registry.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, []string{"eid-viewer", "--export", "/tmp/patient.eid"}, cfg.Intake.ExportCommand)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		msg  string
	}{
		{"bad integer", "COVRECORD_REGISTRY_RETRIES", "many", "not an integer"},
		{"bad duration", "COVRECORD_CACHE_TTL", "forever", "not a duration"},
		{"zero attempts", "COVRECORD_MAX_ATTEMPTS", "0", "at least 1"},
		{"negative retries", "COVRECORD_REGISTRY_RETRIES", "-1", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COVRECORD_OPERATOR=nurse-1\nCOVRECORD_FIRST_TUBE=C19-0000001-1M\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("COVRECORD_OPERATOR")
		os.Unsetenv("COVRECORD_FIRST_TUBE")
	})
	t.Setenv("COVRECORD_FIRST_TUBE", "C19-0000500-1M")

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "nurse-1", cfg.Intake.Operator)
	assert.Equal(t, "C19-0000500-1M", cfg.Intake.FirstTube, "environment wins over the file")
}
