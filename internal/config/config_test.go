package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 4, cfg.MinRun)
	assert.Equal(t, "binary", cfg.Plane)
	assert.False(t, cfg.Strict)
	require.NoError(t, cfg.Validate())

	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestLoad(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "runstego.yaml")
	content := `
min_run: 3
plane: threshold
threshold: 100
ecc: true
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MinRun)
	assert.Equal(t, "threshold", cfg.Plane)
	assert.Equal(t, 100, cfg.Threshold)
	assert.True(t, cfg.ECC)
	// untouched keys keep their defaults
	assert.Equal(t, int64(1234567890), cfg.Seed)
	assert.Equal(t, 8, cfg.MaxMinRun)
	require.NoError(t, cfg.Validate())

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("RUNSTEGO_MIN_RUN", "6")
		t.Setenv("RUNSTEGO_PLANE", "LSB")
		t.Setenv("RUNSTEGO_STRICT", "true")
		t.Setenv("RUNSTEGO_SEED", "-7")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 6, cfg.MinRun)
		assert.Equal(t, "lsb", cfg.Plane)
		assert.True(t, cfg.Strict)
		assert.Equal(t, int64(-7), cfg.Seed)
	})

	t.Run("config path from env", func(t *testing.T) {
		t.Setenv("RUNSTEGO_CONFIG", path)
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.MinRun)
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("RUNSTEGO_MIN_RUN", "four")
		t.Setenv("RUNSTEGO_COMPRESS", "maybe")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RUNSTEGO_MIN_RUN")
		assert.Contains(t, err.Error(), "RUNSTEGO_COMPRESS")
	})

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RUNSTEGO_MAX_MIN_RUN=12\n"), 0o644))
	// registered so the variable set by .env is removed after the test
	t.Setenv("RUNSTEGO_MAX_MIN_RUN", "")
	os.Unsetenv("RUNSTEGO_MAX_MIN_RUN")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MaxMinRun)
}

func TestValidate(t *testing.T) {
	test := []struct {
		name   string
		modify func(*Config)
	}{
		{"min run", func(c *Config) { c.MinRun = 0 }},
		{"plane", func(c *Config) { c.Plane = "msb" }},
		{"threshold", func(c *Config) { c.Plane, c.Threshold = "threshold", 0 }},
		{"threshold too large", func(c *Config) { c.Plane, c.Threshold = "threshold", 256 }},
		{"max min run", func(c *Config) { c.MaxMinRun = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	// a threshold is only checked for the threshold plane
	cfg := Default()
	cfg.Threshold = 0
	assert.NoError(t, cfg.Validate())
}
