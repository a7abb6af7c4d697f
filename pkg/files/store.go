package files

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pluqqy/textpad/pkg/editor"
	"github.com/spf13/afero"
)

var _ editor.FileStore = (*Store)(nil)

// lockRetryDelay is how often a contended write lock is retried
const lockRetryDelay = 50 * time.Millisecond

// Store reads and writes text files byte-for-byte. Saved files go into dir.
type Store struct {
	fs  afero.Fs
	dir string
	// lock guards writes with a lock file; only meaningful on the OS filesystem
	lock bool
}

// NewStore creates a store over afs that saves into dir
func NewStore(afs afero.Fs, dir string) *Store {
	_, onDisk := afs.(*afero.OsFs)
	return &Store{
		fs:   afs,
		dir:  dir,
		lock: onDisk,
	}
}

// Dir returns the documents directory
func (s *Store) Dir() string {
	return s.dir
}

// Read returns the whole file at location
func (s *Store) Read(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := afero.ReadFile(s.fs, location)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", location, err)
	}

	return string(content), nil
}

// Write replaces the file at location with text, creating parent directories
func (s *Store) Write(ctx context.Context, location, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(location), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", location, err)
	}

	if s.lock {
		unlock, err := s.acquire(ctx)
		if err != nil {
			return err
		}
		defer unlock()
	}

	if err := afero.WriteFile(s.fs, location, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}

	return nil
}

// DocumentPath joins the documents dir with the base name of name
func (s *Store) DocumentPath(name string) string {
	base := filepath.Base(name)
	switch base {
	case ".", "..", string(filepath.Separator):
		base = UntitledFileName
	}
	return filepath.Join(s.dir, base)
}

func (s *Store) acquire(ctx context.Context) (func(), error) {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", s.dir, err)
	}

	fl := flock.New(filepath.Join(s.dir, LockFileName))
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to lock documents directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("documents directory %s is locked by another process", s.dir)
	}

	return func() { _ = fl.Unlock() }, nil
}
