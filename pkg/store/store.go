// Package store is the registry of installed toolchains. A toolchain is
// installed iff a directory named exactly by its version exists directly
// under the store root.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store looks up, enumerates and removes toolchain directories. It never
// touches aliases or session links.
type Store struct {
	fs         types.FS
	root       string
	stagingDir string
	logger     zerolog.Logger
}

// New creates a Store rooted at root. stagingDir must live on the same
// filesystem as root so Commit can rename.
func New(fsys types.FS, root, stagingDir string) *Store {
	return &Store{
		fs:         fsys,
		root:       root,
		stagingDir: stagingDir,
		logger:     logging.GetLogger("store"),
	}
}

// Root returns the store root directory
func (s *Store) Root() string {
	return s.root
}

// PathFor returns the directory a version lives in. It does not check existence.
func (s *Store) PathFor(version string) string {
	return filepath.Join(s.root, version)
}

// Exists reports whether version is installed.
func (s *Store) Exists(version string) bool {
	if ValidateVersion(version) != nil {
		return false
	}
	info, err := s.fs.Stat(s.PathFor(version))
	return err == nil && info.IsDir()
}

// List returns installed versions in directory enumeration order. Entries
// that are not directories are skipped.
func (s *Store) List() ([]string, error) {
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read toolchain directory '%s'", s.root).
			WithDetail(errors.DetailPath, s.root)
	}

	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		// Stat follows links, so a symlinked toolchain directory still counts
		info, err := s.fs.Stat(filepath.Join(s.root, entry.Name()))
		if err != nil || !info.IsDir() {
			continue
		}
		versions = append(versions, entry.Name())
	}

	return versions, nil
}

// Remove deletes an installed toolchain. There is no trash.
func (s *Store) Remove(version string) error {
	if err := ValidateVersion(version); err != nil {
		return err
	}
	if !s.Exists(version) {
		return NotInstalled(version)
	}

	path := s.PathFor(version)
	if err := s.fs.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to remove toolchain directory '%s'", path).
			WithDetail(errors.DetailPath, path)
	}

	s.logger.Info().Str("version", version).Str("path", path).Msg("Removed toolchain")
	return nil
}

// Stage creates an empty directory an installer can extract into. Nothing
// under the staging directory counts as installed.
func (s *Store) Stage(version string) (string, error) {
	if err := ValidateVersion(version); err != nil {
		return "", err
	}

	dir := filepath.Join(s.stagingDir, fmt.Sprintf("%s-%s", version, uuid.NewString()))
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to create staging directory '%s'", dir).
			WithDetail(errors.DetailPath, dir)
	}

	s.logger.Debug().Str("version", version).Str("dir", dir).Msg("Staging directory created")
	return dir, nil
}

// Commit moves a fully populated staging directory into the store with a
// single rename, so a version is either absent or complete.
func (s *Store) Commit(version, stagedDir string) error {
	if err := ValidateVersion(version); err != nil {
		return err
	}
	if s.Exists(version) {
		return errors.Newf(errors.ErrAlreadyInstalled, "'%s' is already installed", version).
			WithDetail(errors.DetailVersion, version)
	}

	if err := s.fs.MkdirAll(s.root, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create toolchain directory '%s'", s.root)
	}

	dest := s.PathFor(version)
	if err := s.fs.Rename(stagedDir, dest); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to move '%s' into place", stagedDir).
			WithDetail(errors.DetailPath, dest)
	}

	s.logger.Info().Str("version", version).Str("path", dest).Msg("Committed toolchain")
	return nil
}

// Discard removes a staging directory after a failed install.
func (s *Store) Discard(stagedDir string) error {
	if err := s.fs.RemoveAll(stagedDir); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to remove staging directory '%s'", stagedDir)
	}
	return nil
}

// ValidateVersion rejects version strings that are not a single path element.
func ValidateVersion(version string) error {
	switch {
	case version == "":
		return errors.New(errors.ErrInvalidInput, "version must not be empty")
	case version == "." || version == "..":
		return errors.Newf(errors.ErrInvalidInput, "'%s' is not a valid version", version)
	case strings.ContainsAny(version, `/\`) || strings.ContainsRune(version, 0):
		return errors.Newf(errors.ErrInvalidInput, "'%s' is not a valid version", version).
			WithDetail(errors.DetailVersion, version)
	}
	return nil
}

// NotInstalled returns the error reported for a version with no directory.
func NotInstalled(version string) error {
	return errors.Newf(errors.ErrNotInstalled,
		"'%s' is not installed. Did you install it with 'icicle install'?", version).
		WithDetail(errors.DetailVersion, version)
}
