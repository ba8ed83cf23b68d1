// Package filelock serialises access to a user's task directory across
// processes with an advisory lock file.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	lockFileMode = 0o600
	lockDirMode  = 0o750
)

// Lock acquires an exclusive lock on the file at path, creating it and its
// parent directory if needed. The returned function releases the lock.
// Callers block until no other holder remains.
func Lock(path string) (unlock func() error, err error) {
	return acquire(path, true)
}

// RLock acquires a shared lock on the file at path. Any number of shared
// holders may coexist; an exclusive holder excludes them all.
func RLock(path string) (unlock func() error, err error) {
	return acquire(path, false)
}

// With runs fn while holding the exclusive lock at path.
func With(path string, fn func() error) error {
	unlock, err := Lock(path)
	if err != nil {
		return err
	}
	fnErr := fn()
	if err := unlock(); err != nil && fnErr == nil {
		return fmt.Errorf("releasing lock %s: %w", path, err)
	}
	return fnErr
}

// WithShared runs fn while holding the shared lock at path.
func WithShared(path string, fn func() error) error {
	unlock, err := RLock(path)
	if err != nil {
		return err
	}
	fnErr := fn()
	if err := unlock(); err != nil && fnErr == nil {
		return fmt.Errorf("releasing lock %s: %w", path, err)
	}
	return fnErr
}

func acquire(path string, exclusive bool) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), lockDirMode); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := lockFile(f, exclusive); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}
