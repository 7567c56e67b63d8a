package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultMode is the permission of newly created documents.
const DefaultMode os.FileMode = 0o644

// FileBackend stores documents as files on an afero filesystem.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

// NewFileBackend creates a file backend. Relative names resolve against dir.
func NewFileBackend(fsys afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fsys, dir: dir}
}

func (b *FileBackend) path(name string) string {
	if filepath.IsAbs(name) || b.dir == "" {
		return name
	}
	return filepath.Join(b.dir, name)
}

// Read returns the file contents.
func (b *FileBackend) Read(_ context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, b.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically replaces the file: temp file in the same directory, then rename.
func (b *FileBackend) Write(_ context.Context, name string, data []byte) error {
	target := b.path(name)
	dir := filepath.Dir(target)

	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(b.fs, dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	// TempFile creates 0600; keep the mode of the file being replaced.
	if err := b.fs.Chmod(tmpName, b.mode(target)); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("failed to set mode of %s: %w", name, err)
	}

	if err := b.fs.Rename(tmpName, target); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// mode returns the permissions of an existing target, or DefaultMode.
func (b *FileBackend) mode(target string) os.FileMode {
	if info, err := b.fs.Stat(target); err == nil {
		return info.Mode().Perm()
	}
	return DefaultMode
}

// Remove deletes the file if present.
func (b *FileBackend) Remove(_ context.Context, name string) error {
	err := b.fs.Remove(b.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
