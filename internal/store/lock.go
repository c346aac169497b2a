package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// ErrLocked is returned when the lock marker could not be acquired within
// the configured timeout. The operation did not mutate anything and is safe
// to retry.
var ErrLocked = errors.New("document is locked by another process, try again")

// acquireLock takes the exclusive marker next to the document using a
// create-if-absent primitive, polling with a short backoff until the
// timeout. A marker older than the staleness threshold is treated as
// abandoned by a crashed process and removed.
func (s *Store) acquireLock(ctx context.Context) error {
	deadline := time.Now().Add(s.lockTimeout)
	for {
		f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d %s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
			f.Close()
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock marker: %w", err)
		}

		if info, serr := os.Stat(s.lockPath()); serr == nil && time.Since(info.ModTime()) > s.lockStaleAfter {
			slog.WarnContext(ctx, "Removing stale lock marker",
				"path", s.lockPath(),
				"age", time.Since(info.ModTime()).Round(time.Second))
			_ = os.Remove(s.lockPath())
			continue
		}

		if time.Now().After(deadline) {
			return ErrLocked
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.lockRetry):
		}
	}
}

func (s *Store) releaseLock() {
	_ = os.Remove(s.lockPath())
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}
