// Copyright (c) 2024 RoseLoverX

package tdcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_id: 17349
api_hash: 344583e45741c457fe1862106095a5eb
database_directory: /var/lib/td
device_model: Pixel 8
use_test_dc: true
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int32(17349), cfg.APIID)
	assert.Equal(t, "344583e45741c457fe1862106095a5eb", cfg.APIHash)
	assert.Equal(t, "/var/lib/td", cfg.DatabaseDirectory)
	assert.Equal(t, "Pixel 8", cfg.DeviceModel)
	assert.True(t, cfg.UseTestDC)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_id: [broken"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
