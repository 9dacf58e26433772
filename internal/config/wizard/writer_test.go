package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netspeedy/s3cure/internal/config"
)

func TestWriteConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Endpoint = "https://s3.internal.example.com"
	cfg.Alias = "staging"

	path := filepath.Join(t.TempDir(), "s3cure.yaml")
	require.NoError(t, WriteConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# "+path)
	assert.Contains(t, string(data), "endpoint: https://s3.internal.example.com")

	// The written file must load back unchanged.
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Endpoint, loaded.Endpoint)
	assert.Equal(t, cfg.Alias, loaded.Alias)
	assert.Equal(t, cfg.Credentials, loaded.Credentials)
	assert.Equal(t, cfg.Timeouts, loaded.Timeouts)
}
