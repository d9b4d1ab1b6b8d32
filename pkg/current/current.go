// Package current reports which toolchain a session link resolves to.
package current

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
)

// Current follows sessionLinkPath through any alias and returns the version
// directory name it ends at under storeRoot. It never modifies anything.
//
// A missing link is reported with the retryable detail set, since another
// process may be in the middle of creating it.
func Current(fsys types.FS, sessionLinkPath, storeRoot string) (string, error) {
	logger := logging.GetLogger("current")

	resolved, err := fsys.EvalSymlinks(sessionLinkPath)
	if err != nil {
		e := errors.Wrapf(err, errors.ErrLink, "failed to resolve toolchain directory '%s'", sessionLinkPath).
			WithDetail(errors.DetailPath, sessionLinkPath)
		if _, lerr := fsys.Lstat(sessionLinkPath); os.IsNotExist(lerr) {
			e.WithDetail(errors.DetailRetryable, true)
		}
		return "", e
	}

	root, err := fsys.EvalSymlinks(storeRoot)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to resolve toolchain store '%s'", storeRoot).
			WithDetail(errors.DetailPath, storeRoot)
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidState, "'%s' does not point into the toolchain store", sessionLinkPath).
			WithDetail(errors.DetailPath, sessionLinkPath).
			WithDetail(errors.DetailTarget, resolved)
	}

	// Links may point below a version directory; the version is the first element
	version := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]

	logger.Debug().Str("session", sessionLinkPath).Str("version", version).Msg("Resolved current toolchain")
	return version, nil
}
