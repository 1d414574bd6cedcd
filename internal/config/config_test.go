package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so no anviksha.yaml is picked up.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "anviksha.db", cfg.Store.SQLitePath)
	assert.Equal(t, 2024, cfg.Index.BaseYear)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Detect.Validate())
	assert.Equal(t, 1.5, cfg.Detect.IQRMultiplier)
	assert.Equal(t, 2.5, cfg.Detect.ZThreshold)
}

func TestLoad_EnvOverride(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("ANVIKSHA_STORE_DRIVER", "postgres")
	t.Setenv("ANVIKSHA_INDEX_BASE_YEAR", "2023")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 2023, cfg.Index.BaseYear)
}

func TestLoad_ConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	content := "detect:\n  z_threshold: 3.0\nserver:\n  port: 9090\n"
	require.NoError(t, os.WriteFile("anviksha.yaml", []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Detect.ZThreshold)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Unset keys retain defaults.
	assert.Equal(t, "sqlite", cfg.Store.Driver)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}
