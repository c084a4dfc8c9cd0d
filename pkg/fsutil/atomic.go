package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode applies when a write is given mode 0.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content through a synced temp file in the
// same directory and a rename, so readers see the old or the new content
// and never a mix. On failure path is untouched and no temp file remains.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	steps := []struct {
		what string
		run  func() error
	}{
		{"write", func() error { _, werr := tmp.Write(content); return werr }},
		{"sync", tmp.Sync},
		{"close", tmp.Close},
		{"chmod", func() error { return os.Chmod(tmp.Name(), mode) }},
		{"rename", func() error { return os.Rename(tmp.Name(), path) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("%s temp file: %w", step.what, err)
		}
	}
	return nil
}

// WriteIfChanged is WriteAtomic skipped when path already holds content.
// It reports whether it wrote.
func WriteIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	current, err := os.ReadFile(path)
	if err == nil && bytes.Equal(current, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
