package types

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/icicle/pkg/errors"
)

// PointerKind distinguishes the two things a symlink may point at.
type PointerKind int

const (
	// PointerToolchain targets an installed toolchain directory
	PointerToolchain PointerKind = iota
	// PointerAlias targets a named alias, which itself targets a toolchain
	PointerAlias
)

// String returns the kind name
func (k PointerKind) String() string {
	switch k {
	case PointerToolchain:
		return "toolchain"
	case PointerAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// Pointer is the target of a session link or alias: either a toolchain
// (by version) or an alias (by name). Session -> alias -> toolchain is the
// deepest chain icicle creates.
type Pointer struct {
	Kind PointerKind
	Name string
}

// ToolchainRef points at the toolchain installed under version.
func ToolchainRef(version string) Pointer {
	return Pointer{Kind: PointerToolchain, Name: version}
}

// AliasRef points at the alias with the given name.
func AliasRef(name string) Pointer {
	return Pointer{Kind: PointerAlias, Name: name}
}

// String renders the pointer as "kind:name".
func (p Pointer) String() string {
	return fmt.Sprintf("%s:%s", p.Kind, p.Name)
}

// Path returns the filesystem path a symlink should target for this pointer.
func (p Pointer) Path(l Layout) string {
	if p.Kind == PointerAlias {
		return filepath.Join(l.AliasesDir(), p.Name)
	}
	return filepath.Join(l.ToolchainsDir(), p.Name)
}

// Resolve follows the pointer through any chain of links and returns the
// canonical toolchain directory it ends at.
func (p Pointer) Resolve(fsys FS, l Layout) (string, error) {
	target := p.Path(l)

	canonical, err := fsys.EvalSymlinks(target)
	if err != nil {
		if p.Kind == PointerAlias {
			if _, lerr := fsys.Lstat(target); lerr == nil {
				return "", errors.Wrapf(err, errors.ErrDanglingAlias,
					"alias '%s' points at a toolchain that no longer exists", p.Name).
					WithDetail(errors.DetailPath, target)
			}
			return "", errors.Wrapf(err, errors.ErrNotInstalled, "alias '%s' is not set", p.Name).
				WithDetail(errors.DetailPath, target)
		}
		return "", errors.Wrapf(err, errors.ErrNotInstalled, "'%s' is not installed", p.Name).
			WithDetail(errors.DetailVersion, p.Name)
	}

	info, err := fsys.Stat(canonical)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to stat '%s'", canonical)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrNotInstalled, "'%s' is not a valid toolchain directory", p.Name).
			WithDetail(errors.DetailPath, canonical)
	}

	return canonical, nil
}
