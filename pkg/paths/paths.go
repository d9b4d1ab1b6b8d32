// Package paths provides the per-invocation Environment for icicle.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/types"
)

// Environment variable names
const (
	// EnvIcicleHome is the root directory holding toolchains, aliases and caches
	EnvIcicleHome = "ICICLE_HOME"

	// EnvShellPath is the path of the current shell session's link
	EnvShellPath = "ICICLE_SHELL_PATH"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Layout of ICICLE_HOME. These names are shared by every shell session on
// the host and are not configurable.
const (
	DefaultHomeDirName = ".icicle"
	ToolchainsDirName  = "toolchains"
	AliasesDirName     = "aliases"
	CachesDirName      = "caches"
	StagingDirName     = "staging"
	LocksDirName       = "locks"
	ConfigFileName     = "config.toml"

	// DefaultPinFile is the project-local file naming a toolchain version
	DefaultPinFile = ".icicle-toolchain"

	// SessionLinkPrefix prefixes every per-session link under caches/
	SessionLinkPrefix = "icicle_"
)

// Mode selects which environment variables are required.
type Mode int

const (
	// ModeCommand requires both ICICLE_HOME and ICICLE_SHELL_PATH
	ModeCommand Mode = iota
	// ModeBootstrap is used by `icicle env`: ICICLE_HOME falls back to
	// ~/.icicle and no session link exists yet
	ModeBootstrap
)

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Options are the explicit inputs of an Environment. Empty fields take
// defaults, except Home which is required.
type Options struct {
	Home      string
	ShellPath string
	GOOS      string
	GOARCH    string
	PinFile   string
	WorkDir   string
}

// Environment is the immutable context every component receives. It is
// built once per invocation and never reads process state afterwards.
type Environment struct {
	home       string
	toolchains string
	aliases    string
	caches     string
	staging    string
	locks      string
	shellPath  string
	os         string
	arch       string
	pinFile    string
	workDir    string
}

var _ types.Layout = (*Environment)(nil)

// New validates opts and builds an Environment.
func New(opts Options) (*Environment, error) {
	if opts.Home == "" {
		return nil, errors.Newf(errors.ErrConfig,
			"'%s' environment variable not set. Did you setup your shell to 'eval $(icicle env)'?", EnvIcicleHome)
	}

	home, err := filepath.Abs(expandHome(opts.Home))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "failed to get absolute path for '%s'", opts.Home)
	}

	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	goarch := opts.GOARCH
	if goarch == "" {
		goarch = runtime.GOARCH
	}

	osName, err := PlatformOS(goos)
	if err != nil {
		return nil, err
	}
	archName, err := PlatformArch(goarch)
	if err != nil {
		return nil, err
	}

	pinFile := opts.PinFile
	if pinFile == "" {
		pinFile = DefaultPinFile
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfig, "failed to get current directory")
		}
	}

	shellPath := opts.ShellPath
	if shellPath != "" {
		shellPath, err = filepath.Abs(expandHome(shellPath))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfig, "failed to get absolute path for '%s'", opts.ShellPath)
		}
	}

	return &Environment{
		home:       home,
		toolchains: filepath.Join(home, ToolchainsDirName),
		aliases:    filepath.Join(home, AliasesDirName),
		caches:     filepath.Join(home, CachesDirName),
		staging:    filepath.Join(home, StagingDirName),
		locks:      filepath.Join(home, LocksDirName),
		shellPath:  shellPath,
		os:         osName,
		arch:       archName,
		pinFile:    pinFile,
		workDir:    workDir,
	}, nil
}

// FromProcess builds an Environment from the process environment.
func FromProcess(mode Mode, overrides Options) (*Environment, error) {
	return FromLookup(os.LookupEnv, mode, overrides)
}

// FromLookup builds an Environment reading variables through lookup.
// Home and ShellPath in overrides are ignored; they always come from lookup.
func FromLookup(lookup LookupFunc, mode Mode, overrides Options) (*Environment, error) {
	opts := overrides

	home, _ := lookup(EnvIcicleHome)
	if home == "" && mode == ModeBootstrap {
		userHome, _ := lookup(EnvHome)
		if userHome == "" {
			userHome = xdg.Home
		}
		if userHome == "" {
			return nil, errors.Newf(errors.ErrConfig, "neither '%s' nor '%s' is set", EnvIcicleHome, EnvHome)
		}
		home = filepath.Join(userHome, DefaultHomeDirName)
	}
	opts.Home = home

	shellPath, _ := lookup(EnvShellPath)
	if shellPath == "" && mode == ModeCommand {
		if home == "" {
			return nil, errors.Newf(errors.ErrConfig,
				"'%s' environment variable not set. Did you setup your shell to 'eval $(icicle env)'?", EnvIcicleHome)
		}
		return nil, errors.Newf(errors.ErrConfig,
			"'%s' environment variable not set. Did you setup your shell to 'eval $(icicle env)'?", EnvShellPath)
	}
	opts.ShellPath = shellPath

	return New(opts)
}

// PlatformOS maps a Go OS name to the release asset naming.
func PlatformOS(goos string) (string, error) {
	switch goos {
	case "linux":
		return "linux", nil
	case "darwin":
		return "darwin", nil
	default:
		return "", errors.Newf(errors.ErrConfig, "unsupported OS '%s'", goos)
	}
}

// PlatformArch maps a Go architecture name to the release asset naming.
func PlatformArch(goarch string) (string, error) {
	switch goarch {
	case "amd64", "x86_64":
		return "x64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	default:
		return "", errors.Newf(errors.ErrConfig, "unsupported architecture '%s'", goarch)
	}
}

// Home returns ICICLE_HOME
func (e *Environment) Home() string { return e.home }

// ToolchainsDir returns the toolchain store root
func (e *Environment) ToolchainsDir() string { return e.toolchains }

// AliasesDir returns the directory holding alias links
func (e *Environment) AliasesDir() string { return e.aliases }

// CachesDir returns the directory holding per-session links
func (e *Environment) CachesDir() string { return e.caches }

// StagingDir returns the directory installs extract into before commit
func (e *Environment) StagingDir() string { return e.staging }

// LocksDir returns the directory for advisory lock files
func (e *Environment) LocksDir() string { return e.locks }

// ShellPath returns the session link path, empty during bootstrap
func (e *Environment) ShellPath() string { return e.shellPath }

// OS returns the release OS identifier (linux, darwin)
func (e *Environment) OS() string { return e.os }

// Arch returns the release architecture identifier (x64, arm64)
func (e *Environment) Arch() string { return e.arch }

// PinFileName returns the pin file name
func (e *Environment) PinFileName() string { return e.pinFile }

// WorkDir returns the directory pin files and manifests are read from
func (e *Environment) WorkDir() string { return e.workDir }

// PinFilePath returns the pin file location in the working directory
func (e *Environment) PinFilePath() string {
	return filepath.Join(e.workDir, e.pinFile)
}

// ConfigFilePath returns the optional user config file
func (e *Environment) ConfigFilePath() string {
	return filepath.Join(e.home, ConfigFileName)
}

// EnsureDirs creates the ICICLE_HOME layout so later checks need not.
func (e *Environment) EnsureDirs(fsys types.FS) error {
	for _, dir := range []string{e.home, e.toolchains, e.aliases, e.caches} {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to create directory '%s'", dir).
				WithDetail(errors.DetailPath, dir)
		}
	}
	return nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
