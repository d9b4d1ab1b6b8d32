// Package lock provides a host-local advisory lock built on an exclusively
// created file. Holders on other machines or under other users are not
// excluded.
package lock

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
)

// PollInterval is how often a held lock is retried
var PollInterval = 100 * time.Millisecond

// Release gives up a held lock
type Release func()

// Acquire blocks until the lock file at path is created by this process or
// ctx is done. The returned Release removes the file.
func Acquire(ctx context.Context, path string) (Release, error) {
	logger := logging.GetLogger("lock")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to create lock directory for '%s'", path).
			WithDetail(errors.DetailPath, path)
	}

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	waited := false
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
			_ = f.Close()
			logger.Trace().Str("path", path).Msg("Lock acquired")
			return func() {
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					logger.Warn().Err(err).Str("path", path).Msg("Failed to release lock")
				}
			}, nil
		}
		if !stderrors.Is(err, os.ErrExist) {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to acquire lock '%s'", path).
				WithDetail(errors.DetailPath, path)
		}

		if !waited {
			logger.Debug().Str("path", path).Msg("Lock held by another process, waiting")
			waited = true
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), errors.ErrLockTimeout,
				"timed out waiting for lock '%s'. Remove it if no other icicle process is running", path).
				WithDetail(errors.DetailPath, path)
		case <-ticker.C:
		}
	}
}

// AcquireTimeout is Acquire bounded by timeout. A non-positive timeout
// waits until ctx is done.
func AcquireTimeout(ctx context.Context, path string, timeout time.Duration) (Release, error) {
	if timeout <= 0 {
		return Acquire(ctx, path)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return Acquire(ctx, path)
}
