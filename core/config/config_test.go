package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GENERATION_API_KEY", "GEMINI_API_KEY", "API_KEY", "SERVER_PORT", "GENERATION_MODEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearKeys(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "outings-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:7070", cfg.Server.Address())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.Generation.Model)
	assert.Equal(t, 30*time.Second, cfg.Generation.Timeout)
	assert.Empty(t, cfg.Generation.APIKey)
	assert.False(t, cfg.Registration.EnforceCapacityOnAccept)
	assert.False(t, cfg.Registration.UpsertOnRegister)
	assert.Equal(t, 3, cfg.Feed.HomeSize)
	assert.True(t, cfg.Seed.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearKeys(t)
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("GENERATION_MODEL", "gemini-2.0-flash")
	t.Setenv("API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Generation.Model)
	assert.Equal(t, "secret", cfg.Generation.APIKey)
}

func TestLoad_File(t *testing.T) {
	clearKeys(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
registration:
  enforce_capacity_on_accept: true
feed:
  home_size: 0
seed:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Registration.EnforceCapacityOnAccept)
	assert.Equal(t, 3, cfg.Feed.HomeSize)
	assert.False(t, cfg.Seed.Enabled)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitAndGet(t *testing.T) {
	clearKeys(t)
	Set(nil)
	_, ok := GetSafe()
	assert.False(t, ok)
	assert.Panics(t, func() { Get() })

	cfg, err := Init("")
	require.NoError(t, err)
	assert.Same(t, cfg, Get())
}
