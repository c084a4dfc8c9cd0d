// Package fsutil reads LaTeX sources with categorized errors, notices a
// source that changed while it was processed, and writes documents
// atomically with optional sidecar backups.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrNilFileInfo      = errors.New("nil FileInfo")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// FileInfo is the state of a source at the moment it was read.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
}

func snapshot(path string, st fs.FileInfo) *FileInfo {
	return &FileInfo{Path: path, Mode: st.Mode(), ModTime: st.ModTime(), Size: st.Size()}
}

// ReadFile returns the content of path and the FileInfo observed when it
// was opened.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if st.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	return content, snapshot(path, st), nil
}

// Changed reports whether the file's size or modification time moved away
// from info. A file that no longer exists has changed.
func Changed(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check changed: %w", err)
	}

	st, err := os.Stat(info.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}
	return st.Size() != info.Size || !st.ModTime().Equal(info.ModTime), nil
}

func classify(path string, err error) error {
	var sentinel error
	switch {
	case errors.Is(err, fs.ErrNotExist):
		sentinel = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		sentinel = ErrPermissionDenied
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
	return fmt.Errorf("%w: %s: %w", sentinel, path, err)
}
