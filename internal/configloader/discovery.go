package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "gotexlint"

// ConfigPaths lists the configuration files found for a run. Empty fields
// mean no file was found at that layer.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Layer file names. Project files are tried in order in each directory.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	layerFileNames     = []string{"config.yaml", "config.yml"}
	projectConfigFiles = []string{".gotexlint.yml", ".gotexlint.yaml", "gotexlint.yml", "gotexlint.yaml"}
	vcsRootMarkers     = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the system, user and project configuration files.
//
//   - system:  /etc/gotexlint/config.yaml (%ProgramData%\gotexlint on Windows)
//   - user:    $XDG_CONFIG_HOME/gotexlint/config.yaml (~/.config by default)
//   - project: the nearest .gotexlint.yml at or above workDir
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerFileNames),
		User:    firstFile(userConfigDir(), layerFileNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appName)
}

func userConfigDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project config file found. The walk ends without a
// result at a VCS root or the user's home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if found := firstFile(dir, projectConfigFiles); found != "" {
			return found, nil
		}
		if dir == home || anyExists(dir, vcsRootMarkers) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// anyExists reports whether any of names exists in dir. A ".git" file (as
// in worktrees) counts as well as a directory.
func anyExists(dir string, names []string) bool {
	for _, name := range names {
		if _, err := os.Lstat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
