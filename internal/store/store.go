// Package store persists the whole multi-sheet document atomically and
// recovers it after crashes or corruption. It is the single owner of the
// on-disk workbook; every table travels through it together.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/singleflight"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/cache"
	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/schema"
)

const quarantineStamp = "20060102T150405"

// Config carries the store's tunables. Zero values fall back to defaults.
type Config struct {
	// Path of the workbook document, e.g. ./data/dados.xlsx.
	Path string

	// LockTimeout bounds how long a save waits for the lock marker before
	// failing with ErrLocked. Default 5s.
	LockTimeout time.Duration

	// LockStaleAfter is the age past which a marker is considered
	// abandoned by a crashed process. Default 10m.
	LockStaleAfter time.Duration

	// LockRetryInterval is the polling backoff while the marker is held.
	// Default 100ms.
	LockRetryInterval time.Duration
}

// LoadResult is what a load produced besides the data itself.
type LoadResult struct {
	Data *core.Dataset

	// Recovered is set when the document was unparseable: the bad file was
	// quarantined, a fresh valid one written, and the user should be told
	// to restore a backup.
	Recovered      bool
	QuarantinePath string

	// Migrated is set when the normalizer corrected the document and a
	// compacting re-save already happened.
	Migrated bool
}

// Store is the durable store for the household document. It is safe for
// concurrent use within a process; across processes the lock marker is the
// only shared resource.
type Store struct {
	path           string
	lockTimeout    time.Duration
	lockStaleAfter time.Duration
	lockRetry      time.Duration

	snapshots *cache.LRU[*core.Dataset]
	group     singleflight.Group
}

func New(cfg Config) *Store {
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = 5 * time.Second
	}
	if cfg.LockStaleAfter <= 0 {
		cfg.LockStaleAfter = 10 * time.Minute
	}
	if cfg.LockRetryInterval <= 0 {
		cfg.LockRetryInterval = 100 * time.Millisecond
	}
	return &Store{
		path:           cfg.Path,
		lockTimeout:    cfg.LockTimeout,
		lockStaleAfter: cfg.LockStaleAfter,
		lockRetry:      cfg.LockRetryInterval,
		snapshots:      cache.New[*core.Dataset](4, time.Hour),
	}
}

// Path returns the location of the live document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document, normalizing every table on the way in. A missing
// file is seeded with the default document; an unparseable one is
// quarantined and replaced (see LoadResult.Recovered). Reads are cached by
// the file's modification time, so saves by other processes are observed
// on the next load.
func (s *Store) Load(ctx context.Context) (*LoadResult, error) {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		d := core.DefaultDataset()
		if err := s.Save(ctx, d); err != nil {
			return nil, fmt.Errorf("seed new document: %w", err)
		}
		slog.InfoContext(ctx, "Created new document", "path", s.path)
		return &LoadResult{Data: d.Clone()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}

	key := s.cacheKey(info.ModTime())
	if d, ok := s.snapshots.Get(key); ok {
		return &LoadResult{Data: d.Clone()}, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.loadSlow(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	res := v.(*LoadResult)
	return &LoadResult{
		Data:           res.Data.Clone(),
		Recovered:      res.Recovered,
		QuarantinePath: res.QuarantinePath,
		Migrated:       res.Migrated,
	}, nil
}

func (s *Store) loadSlow(ctx context.Context, key string) (*LoadResult, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return s.recover(ctx, err)
	}
	defer f.Close()

	d, changed := schema.Normalize(readSheets(f))
	res := &LoadResult{Data: d}
	if changed {
		// Migrate once, not on every read.
		if err := s.Save(ctx, d); err != nil {
			return nil, fmt.Errorf("persist migrated document: %w", err)
		}
		res.Migrated = true
		slog.InfoContext(ctx, "Document schema corrected and re-saved", "path", s.path)
	}
	s.snapshots.Set(key, d)
	return res, nil
}

// recover quarantines an unparseable document and writes a fresh valid one
// in its place. Corruption is never fatal: the caller gets an empty default
// document plus the quarantine location to surface to the user.
func (s *Store) recover(ctx context.Context, cause error) (*LoadResult, error) {
	qpath := fmt.Sprintf("%s.CORRUPTED.%s", s.path, time.Now().UTC().Format(quarantineStamp))
	if err := os.Rename(s.path, qpath); err != nil {
		// Move failed; fall back to copy-then-delete.
		if cerr := copyFile(s.path, qpath); cerr != nil {
			return nil, fmt.Errorf("quarantine corrupt document: %w", cerr)
		}
		if rerr := os.Remove(s.path); rerr != nil {
			return nil, fmt.Errorf("remove corrupt document: %w", rerr)
		}
	}
	slog.WarnContext(ctx, "Corrupt document quarantined",
		"path", s.path,
		"quarantine", qpath,
		"cause", cause)

	d := core.DefaultDataset()
	if err := s.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("write replacement document: %w", err)
	}
	return &LoadResult{Data: d, Recovered: true, QuarantinePath: qpath}, nil
}

// Save persists every table atomically: serialize to a temp file in the
// same directory, sync, back up the previous good copy, then rename over
// the live path. Partial writes of the final path are impossible by
// construction. Returns ErrLocked when another process holds the marker
// past the timeout.
func (s *Store) Save(ctx context.Context, d *core.Dataset) error {
	if d == nil {
		return fmt.Errorf("save: nil dataset")
	}
	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer s.releaseLock()

	staged, err := s.stage(d)
	if err != nil {
		return err
	}
	if err := s.commit(staged); err != nil {
		return err
	}

	if info, err := os.Stat(s.path); err == nil {
		s.snapshots.Set(s.cacheKey(info.ModTime()), d.Clone())
	}
	slog.DebugContext(ctx, "Document saved",
		"path", s.path,
		"entries", len(d.Ledger),
		"bills", len(d.Bills))
	return nil
}

// Export streams the live document, byte for byte, to w. The output is
// loadable by Load without further conversion.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if _, err := s.Load(ctx); err != nil {
			return err
		}
	}
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open document for export: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("export document: %w", err)
	}
	return nil
}

// Restore replaces the live document with the uploaded one, after running
// every table through the normalizer. Unparseable input is rejected before
// anything is written; the current document stays untouched.
func (s *Store) Restore(ctx context.Context, r io.Reader) error {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return fmt.Errorf("restore: input is not a loadable document: %w", err)
	}
	defer f.Close()

	d, changed := schema.Normalize(readSheets(f))
	if err := s.Save(ctx, d); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Document restored from upload",
		"path", s.path,
		"normalized", changed,
		"entries", len(d.Ledger))
	return nil
}

func (s *Store) cacheKey(mtime time.Time) string {
	return fmt.Sprintf("%s|%d", s.path, mtime.UnixNano())
}
