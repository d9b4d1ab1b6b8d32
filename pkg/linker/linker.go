package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/paths"
	"github.com/arthur-debert/icicle/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Layout is the part of the Environment the linker needs
type Layout interface {
	types.Layout
	CachesDir() string
}

// Linker creates and repoints session links
type Linker struct {
	fs     types.FS
	layout Layout
	logger zerolog.Logger
}

// New creates a Linker
func New(fsys types.FS, layout Layout) *Linker {
	return &Linker{
		fs:     fsys,
		layout: layout,
		logger: logging.GetLogger("linker"),
	}
}

// AtomicRepoint makes linkPath a symlink to target without an absent window.
// An existing entry at linkPath is replaced only if it is a symlink.
func AtomicRepoint(fsys types.FS, linkPath, target string) error {
	logger := logging.GetLogger("linker")

	if info, err := fsys.Lstat(linkPath); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return errors.Newf(errors.ErrLink, "refusing to replace '%s': not a symlink", linkPath).
				WithDetail(errors.DetailPath, linkPath)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrLink, "failed to inspect '%s'", linkPath).
			WithDetail(errors.DetailPath, linkPath)
	}

	dir := filepath.Dir(linkPath)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrLink, "failed to create directory '%s'", dir).
			WithDetail(errors.DetailPath, dir)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(linkPath), uuid.NewString()))
	if err := fsys.Symlink(target, tmp); err != nil {
		return errors.Wrapf(err, errors.ErrLink, "failed to create symlink '%s'", tmp).
			WithDetail(errors.DetailPath, tmp).
			WithDetail(errors.DetailTarget, target)
	}

	if err := fsys.Rename(tmp, linkPath); err != nil {
		if rmErr := fsys.Remove(tmp); rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", tmp).Msg("Failed to clean up temporary link")
		}
		return errors.Wrapf(err, errors.ErrLink, "failed to replace '%s'", linkPath).
			WithDetail(errors.DetailPath, linkPath).
			WithDetail(errors.DetailTarget, target)
	}

	logger.Debug().Str("link", linkPath).Str("target", target).Msg("Repointed link")
	return nil
}

// Point repoints the session link at ptr after checking that ptr resolves
// to an installed toolchain.
func (l *Linker) Point(sessionLinkPath string, ptr types.Pointer) error {
	if sessionLinkPath == "" {
		return errors.Newf(errors.ErrConfig, "'%s' environment variable not set", paths.EnvShellPath)
	}

	resolved, err := ptr.Resolve(l.fs, l.layout)
	if err != nil {
		return err
	}

	if err := AtomicRepoint(l.fs, sessionLinkPath, ptr.Path(l.layout)); err != nil {
		return err
	}

	l.logger.Info().
		Str("session", sessionLinkPath).
		Str("pointer", ptr.String()).
		Str("resolved", resolved).
		Msg("Session link updated")
	return nil
}

// State describes what a session link currently is
type State struct {
	// Set is false when no link exists at the path
	Set     bool
	Pointer types.Pointer
	// Target is the raw link target
	Target string
}

// Inspect reads a session link without following it. A target outside the
// toolchains and aliases directories is reported as an error.
func (l *Linker) Inspect(sessionLinkPath string) (State, error) {
	target, err := l.fs.Readlink(sessionLinkPath)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, errors.Wrapf(err, errors.ErrLink, "failed to read link '%s'", sessionLinkPath).
			WithDetail(errors.DetailPath, sessionLinkPath)
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(sessionLinkPath), target)
	}
	target = filepath.Clean(target)

	for _, c := range []struct {
		dir  string
		make func(string) types.Pointer
	}{
		{l.layout.ToolchainsDir(), types.ToolchainRef},
		{l.layout.AliasesDir(), types.AliasRef},
	} {
		rel, err := filepath.Rel(c.dir, target)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
			continue
		}
		return State{Set: true, Pointer: c.make(rel), Target: target}, nil
	}

	return State{}, errors.Newf(errors.ErrInvalidState, "'%s' points outside icicle home: '%s'", sessionLinkPath, target).
		WithDetail(errors.DetailPath, sessionLinkPath).
		WithDetail(errors.DetailTarget, target)
}
