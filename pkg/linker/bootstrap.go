package linker

import (
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/paths"
	"github.com/arthur-debert/icicle/pkg/types"
	"github.com/google/uuid"
)

// PIDFileSuffix names the file recording a session's owning shell
const PIDFileSuffix = ".pid"

// DefaultPathEntries are the toolchain subdirectories prepended to PATH,
// in the order they are exported.
var DefaultPathEntries = []string{"oss-cad-suite/bin", "oss-cad-suite/libexec"}

// Session is a freshly minted per-shell link
type Session struct {
	ID       string
	LinkPath string
	Pointer  types.Pointer
	// PathEntries are absolute directories under LinkPath to prepend to PATH
	PathEntries []string
}

// BootstrapOptions configures Bootstrap
type BootstrapOptions struct {
	// Alias the new session points at; defaults to "default"
	Alias string
	// PathEntries relative to the toolchain root; defaults to DefaultPathEntries
	PathEntries []string
	// OwnerPID is recorded next to the link so Prune can tell when the
	// shell that owns it has exited. Zero records nothing.
	OwnerPID int
}

// Bootstrap creates a brand-new session link under caches/ pointing at the
// default alias. Every call mints a new id, so shells never share a link.
// The alias does not need to exist yet.
func (l *Linker) Bootstrap(opts BootstrapOptions) (*Session, error) {
	alias := opts.Alias
	if alias == "" {
		alias = "default"
	}
	entries := opts.PathEntries
	if len(entries) == 0 {
		entries = DefaultPathEntries
	}

	cachesDir := l.layout.CachesDir()
	if err := l.fs.MkdirAll(cachesDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to create caches directory '%s'", cachesDir).
			WithDetail(errors.DetailPath, cachesDir)
	}

	id := uuid.NewString()
	linkPath := filepath.Join(cachesDir, paths.SessionLinkPrefix+id)
	ptr := types.AliasRef(alias)

	if err := AtomicRepoint(l.fs, linkPath, ptr.Path(l.layout)); err != nil {
		return nil, err
	}

	if opts.OwnerPID > 0 {
		pidFile := linkPath + PIDFileSuffix
		if err := l.fs.WriteFile(pidFile, []byte(strconv.Itoa(opts.OwnerPID)+"\n"), 0644); err != nil {
			l.logger.Warn().Err(err).Str("path", pidFile).Msg("Failed to record session owner")
		}
	}

	session := &Session{
		ID:       id,
		LinkPath: linkPath,
		Pointer:  ptr,
	}
	for _, entry := range entries {
		session.PathEntries = append(session.PathEntries, filepath.Join(linkPath, filepath.FromSlash(entry)))
	}

	l.logger.Info().Str("session", linkPath).Str("alias", alias).Msg("Session bootstrapped")
	return session, nil
}
