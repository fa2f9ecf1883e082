package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("PORT", "")
	t.Setenv("DATASET_PATH", "")
	t.Setenv("OUTPUTS_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 40, cfg.Fetch.TimeoutSec)
	assert.Equal(t, "recordings.xlsx", cfg.Paths.Dataset)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9090"
fetch:
  timeout_sec: 15
paths:
  outputs: /var/profiles
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "7070") // env beats file
	t.Setenv("DATASET_PATH", "")
	t.Setenv("OUTPUTS_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Fetch.TimeoutSec)
	assert.Equal(t, "/var/profiles", cfg.Paths.Outputs)
	assert.Equal(t, "recordings.xlsx", cfg.Paths.Dataset, "unset file keys keep defaults")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnreadableFile(t *testing.T) {
	// a path that exists but cannot be read as a file (here: a directory)
	// must surface the error instead of silently using defaults
	t.Setenv("CONFIG_PATH", t.TempDir())

	_, err := Load()
	assert.Error(t, err)
}
