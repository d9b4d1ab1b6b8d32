package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/icicle/pkg/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewHome(t *testing.T) {
	h := testutil.NewHome(t)

	assert.DirExists(t, h.Env().ToolchainsDir())
	assert.DirExists(t, h.Env().AliasesDir())
	assert.Equal(t, filepath.Join(h.Dir, "caches", testutil.SessionName), h.SessionLink())
	assert.NotEqual(t, h.Dir, h.WorkDir)

	root := h.InstallToolchain("2023-06-10")
	assert.True(t, h.Runtime.Store.Exists("2023-06-10"))
	assert.FileExists(t, filepath.Join(root, "oss-cad-suite", "environment"))

	pin := h.WritePinFile("2023-06-10\n")
	assert.Equal(t, h.Env().PinFilePath(), pin)
}

func TestSymlinkHelpers(t *testing.T) {
	dir := t.TempDir()
	target := testutil.CreateDir(t, dir, "target")
	link := filepath.Join(dir, "nested", "link")

	testutil.CreateSymlink(t, target, link)
	assert.True(t, testutil.SymlinkExists(t, link))
	assert.False(t, testutil.SymlinkExists(t, target))
	assert.Equal(t, target, testutil.ReadSymlink(t, link))
	assert.Equal(t, testutil.Canonical(t, target), testutil.Canonical(t, link))

	_, err := os.Stat(link)
	assert.NoError(t, err)

	dangling := filepath.Join(dir, "dangling")
	testutil.CreateSymlink(t, filepath.Join(dir, "gone"), dangling)
	assert.True(t, testutil.SymlinkExists(t, dangling))
}
