package probe

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicReplace writes data to path via a temp sibling file, fsyncs it,
// renames it over path, and best-effort fsyncs the parent directory so a
// concurrent reader never observes a truncated or partial file.
//
// Grounded on the teacher corpus's cache index writer
// (bureau-foundation-bureau's artifact cache: CreateTemp + Sync + Close +
// Rename), since the teacher itself only ever uses plain os.WriteFile.
func AtomicReplace(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("atomic replace: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("atomic replace: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	// Clean up the temp file on any failure path before the rename.
	succeeded := false
	defer func() {
		if !succeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("atomic replace: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("atomic replace: fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("atomic replace: close temp: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("atomic replace: chmod temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("atomic replace: rename: %w", err)
	}
	succeeded = true

	fsyncDirBestEffort(dir)
	return nil
}
