package core

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/icicle/pkg/alias"
	"github.com/arthur-debert/icicle/pkg/config"
	"github.com/arthur-debert/icicle/pkg/filesystem"
	"github.com/arthur-debert/icicle/pkg/installer"
	"github.com/arthur-debert/icicle/pkg/linker"
	"github.com/arthur-debert/icicle/pkg/lock"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/paths"
	"github.com/arthur-debert/icicle/pkg/resolver"
	"github.com/arthur-debert/icicle/pkg/store"
	"github.com/arthur-debert/icicle/pkg/types"
)

// HomeLockName is the lock file guarding mutations of ICICLE_HOME
const HomeLockName = "home.lock"

// Runtime is everything a command needs, built once per invocation
type Runtime struct {
	Env      *paths.Environment
	FS       types.FS
	Config   *config.Config
	Store    *store.Store
	Aliases  *alias.Manager
	Linker   *linker.Linker
	Resolver *resolver.Resolver
}

// NewRuntime wires the components over an existing Environment
func NewRuntime(env *paths.Environment, fsys types.FS, cfg *config.Config) *Runtime {
	st := store.New(fsys, env.ToolchainsDir(), env.StagingDir())
	return &Runtime{
		Env:      env,
		FS:       fsys,
		Config:   cfg,
		Store:    st,
		Aliases:  alias.New(fsys, env, st, cfg.Toolchain.DefaultAlias),
		Linker:   linker.New(fsys, env),
		Resolver: resolver.New(fsys, env),
	}
}

// LoadOptions configures Load
type LoadOptions struct {
	Mode paths.Mode
	// Lookup reads environment variables; defaults to os.LookupEnv
	Lookup paths.LookupFunc
	// ConfigOverrides are applied last, keyed like "output.format"
	ConfigOverrides map[string]interface{}
	// WorkDir overrides the current directory
	WorkDir string
}

// Load builds a Runtime from the environment and configuration. The home
// directory layout is created if missing.
func Load(opts LoadOptions) (*Runtime, error) {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	env, err := paths.FromLookup(lookup, opts.Mode, paths.Options{WorkDir: opts.WorkDir})
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithOverrides(env.ConfigFilePath(), opts.ConfigOverrides)
	if err != nil {
		return nil, err
	}

	if cfg.Toolchain.PinFile != env.PinFileName() {
		env, err = paths.FromLookup(lookup, opts.Mode, paths.Options{
			WorkDir: env.WorkDir(),
			PinFile: cfg.Toolchain.PinFile,
		})
		if err != nil {
			return nil, err
		}
	}

	fsys := filesystem.NewOS()
	if err := env.EnsureDirs(fsys); err != nil {
		return nil, err
	}

	logger := logging.GetLogger("core")
	logger.Debug().
		Str("home", env.Home()).
		Str("session", env.ShellPath()).
		Str("platform", env.OS()+"-"+env.Arch()).
		Msg("Runtime loaded")

	return NewRuntime(env, fsys, cfg), nil
}

// Locked runs fn while holding the home lock, when locking is enabled.
func (r *Runtime) Locked(ctx context.Context, fn func() error) error {
	if !r.Config.Locking.Enabled {
		return fn()
	}
	release, err := lock.AcquireTimeout(ctx, filepath.Join(r.Env.LocksDir(), HomeLockName), r.Config.Locking.Timeout)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

// DownloadDir is where archives are downloaded before extraction
func (r *Runtime) DownloadDir() string {
	if r.Config.Download.CacheDir != "" {
		return r.Config.Download.CacheDir
	}
	return filepath.Join(xdg.CacheHome, "icicle", "downloads")
}

// Installer returns an installer that commits under the home lock.
// progress receives a progress bar when non-nil.
func (r *Runtime) Installer(ctx context.Context, progress io.Writer) *installer.Installer {
	return installer.New(r.Store, installer.Options{
		URLTemplate:  r.Config.Download.URLTemplate,
		OS:           r.Env.OS(),
		Arch:         r.Env.Arch(),
		CacheDir:     r.DownloadDir(),
		Timeout:      r.Config.Download.Timeout,
		ExecSubpaths: r.Config.Toolchain.BinSubpaths,
		Progress:     progress,
		Guard: func(fn func() error) error {
			return r.Locked(ctx, fn)
		},
	})
}
