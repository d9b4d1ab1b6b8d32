// pkg/store/store_test.go
// TEST TYPE: Store Tests
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test toolchain lookup, enumeration, removal and staged commits

package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/filesystem"
	"github.com/arthur-debert/icicle/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	home := t.TempDir()
	root := filepath.Join(home, "toolchains")
	require.NoError(t, os.MkdirAll(root, 0755))
	return store.New(filesystem.NewOS(), root, filepath.Join(home, "staging")), root
}

func install(t *testing.T, s *store.Store, version string) {
	t.Helper()
	dir, err := s.Stage(version)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "oss-cad-suite", "bin"), 0755))
	require.NoError(t, s.Commit(version, dir))
}

func TestPathFor(t *testing.T) {
	s, root := setupStore(t)
	assert.Equal(t, filepath.Join(root, "2023-01-05"), s.PathFor("2023-01-05"))
	// No existence check
	assert.False(t, s.Exists("2023-01-05"))
}

func TestInstallUninstallRoundTrip(t *testing.T) {
	s, _ := setupStore(t)

	install(t, s, "2023-01-05")
	assert.True(t, s.Exists("2023-01-05"))
	versions, err := s.List()
	require.NoError(t, err)
	assert.Contains(t, versions, "2023-01-05")

	require.NoError(t, s.Remove("2023-01-05"))
	assert.False(t, s.Exists("2023-01-05"))
	versions, err = s.List()
	require.NoError(t, err)
	assert.NotContains(t, versions, "2023-01-05")
}

func TestList(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, root string)
		want  []string
	}{
		{
			name:  "empty_store",
			setup: func(t *testing.T, root string) {},
			want:  []string{},
		},
		{
			name: "skips_stray_files",
			setup: func(t *testing.T, root string) {
				require.NoError(t, os.MkdirAll(filepath.Join(root, "2023-01-05"), 0755))
				require.NoError(t, os.MkdirAll(filepath.Join(root, "2023-06-10"), 0755))
				require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0644))
			},
			want: []string{"2023-01-05", "2023-06-10"},
		},
		{
			name: "missing_root",
			setup: func(t *testing.T, root string) {
				require.NoError(t, os.RemoveAll(root))
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, root := setupStore(t)
			tt.setup(t, root)

			got, err := s.List()
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestList_StablePerCall(t *testing.T) {
	s, _ := setupStore(t)
	for _, v := range []string{"a", "b", "c", "d"} {
		install(t, s, v)
	}

	first, err := s.List()
	require.NoError(t, err)
	second, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRemove_NotInstalled(t *testing.T) {
	s, _ := setupStore(t)

	err := s.Remove("2023-01-05")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotInstalled))
	assert.Equal(t, "2023-01-05", errors.GetErrorDetails(err)[errors.DetailVersion])
}

func TestRemove_StrayFileIsNotInstalled(t *testing.T) {
	s, root := setupStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "2023-01-05"), []byte("x"), 0644))

	err := s.Remove("2023-01-05")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotInstalled))
}

func TestStagingIsNotInstalled(t *testing.T) {
	s, _ := setupStore(t)

	dir, err := s.Stage("2023-01-05")
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.False(t, s.Exists("2023-01-05"))

	versions, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, versions)

	require.NoError(t, s.Discard(dir))
	assert.NoDirExists(t, dir)
}

func TestCommit_AlreadyInstalled(t *testing.T) {
	s, _ := setupStore(t)
	install(t, s, "2023-01-05")

	dir, err := s.Stage("2023-01-05")
	require.NoError(t, err)
	err = s.Commit("2023-01-05", dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyInstalled))
}

func TestValidateVersion(t *testing.T) {
	for _, bad := range []string{"", ".", "..", "a/b", `a\b`, "../escape"} {
		t.Run("rejects_"+bad, func(t *testing.T) {
			err := store.ValidateVersion(bad)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
	assert.NoError(t, store.ValidateVersion("2023-01-05"))
}
