package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	// BackupModeSidecar keeps the backup beside the file, named with
	// BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"
	BackupModeNone    BackupMode = "none"
)

// BackupSuffix names sidecar backups.
const BackupSuffix = ".gotexlint.bak"

// BackupConfig controls backups before a document is replaced.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig has backups off, in sidecar mode when enabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath is where path would be backed up, or "" for BackupModeNone.
// Unrecognized modes behave like sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location and reports whether it
// did. Nothing happens when backups are off, when path does not exist, or
// when a backup is already present: the first backup is the one kept.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	dst := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || dst == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	switch _, err := os.Lstat(dst); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, info, err := ReadFile(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, dst, content, info.Mode.Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
