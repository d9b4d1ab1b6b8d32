package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/filesystem"
	"github.com/arthur-debert/icicle/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name   string
		files  []string
		wantOK bool
		want   string
	}{
		{"none", []string{"README.md"}, false, ""},
		{"yml", []string{"icicle.yml"}, true, "icicle.yml"},
		{"yaml", []string{"icicle.yaml"}, true, "icicle.yaml"},
		{"case_insensitive", []string{"Icicle.YML"}, true, "Icicle.YML"},
		{"not_a_prefix_match", []string{"icicle.yml.bak"}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("toolchain: x\n"), 0644))
			}

			path, ok, err := manifest.Find(filesystem.NewOS(), dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, filepath.Join(dir, tt.want), path)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icicle.yml")
	content := `toolchain: " 2023-06-10 "
scripts:
  synth: yosys -p synth_ice40 top.v
  pnr: nextpnr-ice40 --json top.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := manifest.Load(filesystem.NewOS(), path)
	require.NoError(t, err)

	assert.Equal(t, "2023-06-10", m.Toolchain)
	assert.Equal(t, manifest.DefaultShell, m.Shell)
	assert.Equal(t, path, m.Path)
	assert.Equal(t, []string{"pnr", "synth"}, m.ScriptNames())
	assert.Equal(t, "yosys -p synth_ice40 top.v", m.Scripts["synth"])
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icicle.yml")
	require.NoError(t, os.WriteFile(path, []byte("scripts: [unterminated"), 0644))

	_, err := manifest.Load(filesystem.NewOS(), path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
}

func TestLoadFrom_Missing(t *testing.T) {
	m, ok, err := manifest.LoadFrom(filesystem.NewOS(), t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)
}
