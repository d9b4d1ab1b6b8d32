package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefault(t *testing.T) {
	content, err := GenerateDefault()
	require.NoError(t, err)

	assert.Contains(t, content, "[download]")
	assert.Contains(t, content, "[locking]")
	assert.Contains(t, content, "pin_file")
	assert.Contains(t, content, ".icicle-toolchain")
}

func TestGenerate_LoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Locking.Enabled = false
	cfg.Toolchain.BinSubpaths = []string{"bin"}

	content, err := Generate(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultsContent(t *testing.T) {
	content := DefaultsContent()
	assert.Contains(t, content, "[download]")
	assert.Contains(t, content, "[sessions]")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}
