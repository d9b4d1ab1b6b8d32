// Package alias manages named pointers to installed toolchains. Today the
// only alias is "default".
package alias

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/linker"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/store"
	"github.com/arthur-debert/icicle/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultName is the alias `icicle default` manages
const DefaultName = "default"

// Manager owns alias links under the aliases directory
type Manager struct {
	fs          types.FS
	layout      types.Layout
	store       *store.Store
	defaultName string
	logger      zerolog.Logger
}

// New creates a Manager. An empty defaultName means DefaultName.
func New(fsys types.FS, layout types.Layout, st *store.Store, defaultName string) *Manager {
	if defaultName == "" {
		defaultName = DefaultName
	}
	return &Manager{
		fs:          fsys,
		layout:      layout,
		store:       st,
		defaultName: defaultName,
		logger:      logging.GetLogger("alias"),
	}
}

// DefaultName returns the name of the default alias
func (m *Manager) DefaultName() string {
	return m.defaultName
}

// Path returns the link path of the named alias
func (m *Manager) Path(name string) string {
	return filepath.Join(m.layout.AliasesDir(), name)
}

// Exists reports whether a link exists for the alias, dangling or not
func (m *Manager) Exists(name string) bool {
	_, err := m.fs.Lstat(m.Path(name))
	return err == nil
}

// Set points the named alias at an installed version.
func (m *Manager) Set(name, version string) error {
	if err := store.ValidateVersion(name); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "'%s' is not a valid alias name", name)
	}
	if !m.store.Exists(version) {
		return store.NotInstalled(version)
	}

	if err := linker.AtomicRepoint(m.fs, m.Path(name), m.store.PathFor(version)); err != nil {
		return err
	}

	m.logger.Info().Str("alias", name).Str("version", version).Msg("Alias updated")
	return nil
}

// SetDefault points the default alias at an installed version.
func (m *Manager) SetDefault(version string) error {
	return m.Set(m.defaultName, version)
}

// Resolve follows the named alias to its canonical toolchain directory.
// ok is false when the alias is not set. A dangling alias is an error.
func (m *Manager) Resolve(name string) (path string, ok bool, err error) {
	if _, err := m.fs.Lstat(m.Path(name)); err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrIO, "failed to inspect alias '%s'", name)
	}

	resolved, err := types.AliasRef(name).Resolve(m.fs, m.layout)
	if err != nil {
		return "", false, err
	}
	return resolved, true, nil
}

// ResolveDefault follows the default alias. See Resolve.
func (m *Manager) ResolveDefault() (string, bool, error) {
	return m.Resolve(m.defaultName)
}
