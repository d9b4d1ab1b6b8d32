package linker

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/paths"
)

// PruneOptions selects which session links Prune removes
type PruneOptions struct {
	// Keep is never removed, normally the calling shell's own session
	Keep string
	// MaxAge removes sessions with no recorded owner once they are older.
	// Zero keeps them.
	MaxAge time.Duration
	// Alive reports whether a process exists; defaults to ProcessAlive
	Alive func(pid int) bool
	// Now defaults to time.Now
	Now func() time.Time
	// DryRun reports what would be removed without removing it
	DryRun bool
}

// PruneResult lists what Prune did
type PruneResult struct {
	Removed []string
	Kept    int
}

// Prune removes session links whose owning shell has exited, and sessions
// without a recorded owner that are older than MaxAge. Only entries named
// like session links are considered.
func (l *Linker) Prune(opts PruneOptions) (*PruneResult, error) {
	alive := opts.Alive
	if alive == nil {
		alive = ProcessAlive
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	cachesDir := l.layout.CachesDir()
	entries, err := l.fs.ReadDir(cachesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return &PruneResult{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read caches directory '%s'", cachesDir).
			WithDetail(errors.DetailPath, cachesDir)
	}

	result := &PruneResult{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, paths.SessionLinkPrefix) || strings.HasSuffix(name, PIDFileSuffix) {
			continue
		}
		linkPath := filepath.Join(cachesDir, name)

		info, err := l.fs.Lstat(linkPath)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			continue
		}
		if opts.Keep != "" && filepath.Clean(opts.Keep) == linkPath {
			result.Kept++
			continue
		}

		stale := false
		if pid, ok := l.readOwner(linkPath); ok {
			stale = !alive(pid)
		} else if opts.MaxAge > 0 {
			stale = now().Sub(info.ModTime()) > opts.MaxAge
		}

		if !stale {
			result.Kept++
			continue
		}

		if !opts.DryRun {
			if err := l.fs.Remove(linkPath); err != nil && !os.IsNotExist(err) {
				return result, errors.Wrapf(err, errors.ErrLink, "failed to remove session '%s'", linkPath).
					WithDetail(errors.DetailPath, linkPath)
			}
			if err := l.fs.Remove(linkPath + PIDFileSuffix); err != nil && !os.IsNotExist(err) {
				l.logger.Warn().Err(err).Str("path", linkPath+PIDFileSuffix).Msg("Failed to remove session owner file")
			}
		}
		result.Removed = append(result.Removed, linkPath)
		l.logger.Debug().Str("session", linkPath).Bool("dry_run", opts.DryRun).Msg("Pruned session")
	}

	l.logger.Info().Int("removed", len(result.Removed)).Int("kept", result.Kept).Msg("Sessions pruned")
	return result, nil
}

func (l *Linker) readOwner(linkPath string) (int, bool) {
	data, err := l.fs.ReadFile(linkPath + PIDFileSuffix)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// ProcessAlive reports whether pid names a running process. A process
// owned by another user counts as running.
func ProcessAlive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = p.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return stderrors.Is(err, syscall.EPERM)
}
