package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glare-project/glare/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Sync.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.Sync.ReconnectDelay)
	assert.Equal(t, 2*time.Minute, cfg.Match.TimeTolerance)
	assert.True(t, cfg.Match.SingleCandidateShortcut)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".glare", "config.yaml")

	cfg := config.Default()
	cfg.Origin = "https://glare.example.com"
	cfg.Token = "secret"
	cfg.Match.TimeTolerance = 90 * time.Second
	require.NoError(t, config.Save(path, cfg))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://glare.example.com", loaded.Origin)
	assert.Equal(t, "secret", loaded.Token)
	assert.Equal(t, 90*time.Second, loaded.Match.TimeTolerance)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("origin: https://only-origin\n"), 0600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://only-origin", cfg.Origin)
	assert.Equal(t, 10*time.Second, cfg.Sync.PollInterval)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("origin: [unclosed"), 0600))

	_, err := config.Load(path)
	assert.Error(t, err)
}
