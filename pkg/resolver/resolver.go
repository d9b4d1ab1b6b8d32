// Package resolver decides which version string an invocation refers to.
// It never checks whether that version is installed.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/manifest"
	"github.com/arthur-debert/icicle/pkg/types"
)

// Source identifies where a resolved version came from
type Source int

const (
	SourceExplicit Source = iota
	SourcePinFile
	SourceManifest
)

// String returns the source name
func (s Source) String() string {
	switch s {
	case SourceExplicit:
		return "argument"
	case SourcePinFile:
		return "pin file"
	case SourceManifest:
		return "manifest"
	default:
		return "unknown"
	}
}

// Resolution is a resolved version and its origin
type Resolution struct {
	Version string
	Source  Source
	// Path is the file the version was read from, empty for SourceExplicit
	Path string
}

// Resolve returns explicit if non-empty, otherwise the trimmed content of
// the pin file. It fails with MISSING_VERSION when neither yields a version.
func Resolve(fsys types.FS, explicit, pinFilePath string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	version, ok, err := readPinFile(fsys, pinFilePath)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", missingVersion(filepath.Base(pinFilePath), false)
	}
	return version, nil
}

// Layout is the part of the Environment the Resolver reads
type Layout interface {
	PinFilePath() string
	WorkDir() string
}

// Resolver applies the full precedence: explicit argument, pin file, then
// the project manifest's toolchain.
type Resolver struct {
	fs     types.FS
	layout Layout
}

// New creates a Resolver
func New(fsys types.FS, layout Layout) *Resolver {
	return &Resolver{fs: fsys, layout: layout}
}

// Resolve resolves explicit against the working directory
func (r *Resolver) Resolve(explicit string) (Resolution, error) {
	logger := logging.GetLogger("resolver")

	if explicit != "" {
		return Resolution{Version: explicit, Source: SourceExplicit}, nil
	}

	pinFile := r.layout.PinFilePath()
	version, ok, err := readPinFile(r.fs, pinFile)
	if err != nil {
		return Resolution{}, err
	}
	if ok {
		logger.Debug().Str("version", version).Str("path", pinFile).Msg("Version read from pin file")
		return Resolution{Version: version, Source: SourcePinFile, Path: pinFile}, nil
	}

	m, found, err := manifest.LoadFrom(r.fs, r.layout.WorkDir())
	if err != nil {
		return Resolution{}, err
	}
	if found && m.Toolchain != "" {
		logger.Debug().Str("version", m.Toolchain).Str("path", m.Path).Msg("Version read from manifest")
		return Resolution{Version: m.Toolchain, Source: SourceManifest, Path: m.Path}, nil
	}

	return Resolution{}, missingVersion(filepath.Base(pinFile), true)
}

func readPinFile(fsys types.FS, path string) (string, bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrMissingVersion, "failed to read file '%s'", path).
			WithDetail(errors.DetailPath, path)
	}

	version := strings.TrimSpace(string(data))
	if version == "" {
		return "", false, nil
	}
	return version, true, nil
}

func missingVersion(pinFileName string, mentionManifest bool) error {
	if mentionManifest {
		return errors.Newf(errors.ErrMissingVersion,
			"no version specified. Please specify a version, create a '%s' file with the version you want to use, "+
				"or declare a toolchain in an icicle.yml file", pinFileName)
	}
	return errors.Newf(errors.ErrMissingVersion,
		"no version specified. Please specify a version or create a '%s' file with the version you want to use",
		pinFileName)
}
