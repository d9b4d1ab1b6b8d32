package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/icicle/pkg/config"
	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/filesystem"
	"github.com/arthur-debert/icicle/pkg/paths"
)

// SessionName is the session link name used by NewHome
const SessionName = paths.SessionLinkPrefix + "test"

// Home is an isolated icicle installation for one test
type Home struct {
	t       *testing.T
	Dir     string
	WorkDir string
	Runtime *core.Runtime
}

// NewHome creates an empty ICICLE_HOME, a separate working directory and
// a Runtime over them. Locking is enabled with a short timeout.
func NewHome(t *testing.T) *Home {
	t.Helper()

	dir := t.TempDir()
	work := t.TempDir()

	env, err := paths.New(paths.Options{
		Home:      dir,
		ShellPath: filepath.Join(dir, paths.CachesDirName, SessionName),
		GOOS:      "linux",
		GOARCH:    "amd64",
		WorkDir:   work,
	})
	if err != nil {
		t.Fatalf("Failed to create environment: %v", err)
	}

	fsys := filesystem.NewOS()
	if err := env.EnsureDirs(fsys); err != nil {
		t.Fatalf("Failed to create home layout: %v", err)
	}

	cfg := config.Default()
	cfg.Download.CacheDir = filepath.Join(dir, "downloads")
	cfg.Locking.Timeout = 2 * time.Second

	return &Home{
		t:       t,
		Dir:     dir,
		WorkDir: work,
		Runtime: core.NewRuntime(env, fsys, cfg),
	}
}

// Env returns the home's Environment
func (h *Home) Env() *paths.Environment {
	return h.Runtime.Env
}

// InstallToolchain creates a minimal toolchain directory for version and
// returns its path.
func (h *Home) InstallToolchain(version string) string {
	h.t.Helper()
	root := filepath.Join(h.Env().ToolchainsDir(), version)
	CreateFile(h.t, root, "oss-cad-suite/environment", "export ICICLE_TOOLCHAIN="+version+"\n")
	CreateFile(h.t, root, "oss-cad-suite/bin/yosys", "#!/bin/sh\necho "+version+"\n")
	CreateDir(h.t, root, "oss-cad-suite/libexec")
	return root
}

// WritePinFile writes the pin file in the working directory
func (h *Home) WritePinFile(content string) string {
	h.t.Helper()
	return CreateFile(h.t, h.WorkDir, h.Env().PinFileName(), content)
}

// WriteManifest writes icicle.yml in the working directory
func (h *Home) WriteManifest(content string) string {
	h.t.Helper()
	return CreateFile(h.t, h.WorkDir, "icicle.yml", content)
}

// SessionLink returns the session link path
func (h *Home) SessionLink() string {
	return h.Env().ShellPath()
}
