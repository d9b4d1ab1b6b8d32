package installer

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/store"
	"github.com/rs/zerolog"
)

// UserAgent is sent with every download request
const UserAgent = "icicle/1.0"

// Options configures an Installer
type Options struct {
	// URLTemplate may use {date}, {minified}, {os} and {arch}
	URLTemplate string
	// OS and Arch are release asset identifiers (linux/darwin, x64/arm64)
	OS   string
	Arch string
	// CacheDir receives the downloaded archive until it is extracted
	CacheDir string
	// Timeout bounds the whole download; zero means no limit
	Timeout time.Duration
	// ExecSubpaths are directories whose files are made executable
	ExecSubpaths []string
	// Progress receives a progress bar when non-nil
	Progress io.Writer
	// Client overrides the HTTP client
	Client *http.Client
	// Guard, when set, wraps the commit into the store
	Guard func(fn func() error) error
}

// Result describes a finished install
type Result struct {
	Version string
	Path    string
	URL     string
	// AlreadyInstalled is true when nothing was downloaded
	AlreadyInstalled bool
}

// Installer fetches toolchains into a Store
type Installer struct {
	store  *store.Store
	opts   Options
	client *http.Client
	logger zerolog.Logger
}

// New creates an Installer
func New(st *store.Store, opts Options) *Installer {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Installer{
		store:  st,
		opts:   opts,
		client: client,
		logger: logging.GetLogger("installer"),
	}
}

// URL expands the template for version
func (i *Installer) URL(version string) string {
	return ExpandTemplate(i.opts.URLTemplate, version, i.opts.OS, i.opts.Arch)
}

// ExpandTemplate substitutes the release URL placeholders
func ExpandTemplate(tmpl, version, osName, arch string) string {
	return strings.NewReplacer(
		"{date}", version,
		"{minified}", strings.ReplaceAll(version, "-", ""),
		"{os}", osName,
		"{arch}", arch,
	).Replace(tmpl)
}

// Install downloads and installs version. An already installed version is
// reported in the result and is not an error.
func (i *Installer) Install(ctx context.Context, version string) (*Result, error) {
	if err := store.ValidateVersion(version); err != nil {
		return nil, err
	}

	downloadURL := i.URL(version)
	result := &Result{Version: version, Path: i.store.PathFor(version), URL: downloadURL}

	if i.store.Exists(version) {
		i.logger.Info().Str("version", version).Msg("Toolchain already installed")
		result.AlreadyInstalled = true
		return result, nil
	}

	archive, err := archivePath(i.opts.CacheDir, downloadURL)
	if err != nil {
		return nil, err
	}

	if err := i.download(ctx, archive, downloadURL); err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(archive); rmErr != nil && !os.IsNotExist(rmErr) {
			i.logger.Warn().Err(rmErr).Str("path", archive).Msg("Failed to remove downloaded archive")
		}
	}()

	staged, err := i.store.Stage(version)
	if err != nil {
		return nil, err
	}

	if err := i.unpack(ctx, archive, staged); err != nil {
		if discardErr := i.store.Discard(staged); discardErr != nil {
			i.logger.Warn().Err(discardErr).Str("dir", staged).Msg("Failed to discard staging directory")
		}
		return nil, err
	}

	commit := func() error { return i.store.Commit(version, staged) }
	if i.opts.Guard != nil {
		guarded := commit
		commit = func() error { return i.opts.Guard(guarded) }
	}

	if err := commit(); err != nil {
		if discardErr := i.store.Discard(staged); discardErr != nil {
			i.logger.Warn().Err(discardErr).Str("dir", staged).Msg("Failed to discard staging directory")
		}
		if errors.IsErrorCode(err, errors.ErrAlreadyInstalled) {
			// Another process finished the same install first
			result.AlreadyInstalled = true
			return result, nil
		}
		return nil, err
	}

	i.logger.Info().Str("version", version).Str("path", result.Path).Msg("Toolchain installed")
	return result, nil
}

func (i *Installer) unpack(ctx context.Context, archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to open archive '%s'", archive).
			WithDetail(errors.DetailPath, archive)
	}
	defer func() { _ = f.Close() }()

	if err := ExtractTarGz(ctx, f, dest); err != nil {
		return err
	}
	return MakeExecutable(dest, i.opts.ExecSubpaths)
}

func archivePath(cacheDir, downloadURL string) (string, error) {
	parsed, err := url.Parse(downloadURL)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfig, "invalid download url '%s'", downloadURL)
	}
	base := path.Base(parsed.Path)
	if base == "." || base == "" || base == "/" {
		return "", errors.Newf(errors.ErrConfig, "cannot infer archive name from url '%s'", downloadURL)
	}
	return filepath.Join(cacheDir, base), nil
}
