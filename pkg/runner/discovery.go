package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gotexlint/pkg/texdetect"
)

// detectSniffSize is how much of an unlisted file is read for detection.
const detectSniffSize = 8 << 10

// matcher holds the compiled discovery criteria for one run.
type matcher struct {
	workDir    string
	extensions []string
	detect     bool
	include    []glob.Glob
	exclude    []glob.Glob
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}
	return &matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		detect:     opts.DetectContent,
		include:    include,
		exclude:    exclude,
	}, nil
}

// compileGlobs compiles slash-separated patterns. "*" stays within one path
// segment and "**" spans segments.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Discover finds LaTeX files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Explicitly named files only need to pass the glob filters.
			if m.allowed(m.rel(absPath)) {
				add(absPath)
			}
			continue
		}

		discovered, err := m.walk(ctx, absPath, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk recursively walks root and returns matching files.
func (m *matcher) walk(ctx context.Context, root string, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := m.rel(path)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || texdetect.IsExcluded(relToRoot(root, path)+"/") {
				return filepath.SkipDir
			}
			if m.excluded(relPath) || m.excluded(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // inaccessible targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not descend through a symlinked root.
				subFiles, err := m.walk(ctx, realPath, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if m.matches(path, relPath) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (m *matcher) rel(path string) string {
	relPath, err := filepath.Rel(m.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relPath)
}

// relToRoot returns path relative to the walked root, so vendor rules never
// see the "../" segments of a root outside the working directory.
func relToRoot(root, path string) string {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relPath)
}

// matches checks extension (or content, when detection is on) and globs.
func (m *matcher) matches(path, relPath string) bool {
	if !m.allowed(relPath) {
		return false
	}
	if hasMatchingExtension(path, m.extensions) {
		return true
	}
	return m.detect && looksLikeTeX(path)
}

// allowed applies the exclude and include globs.
func (m *matcher) allowed(relPath string) bool {
	if m.excluded(relPath) {
		return false
	}
	if len(m.include) == 0 {
		return true
	}
	return matchAny(m.include, relPath)
}

func (m *matcher) excluded(relPath string) bool {
	return matchAny(m.exclude, relPath)
}

// matchAny matches the relative path, and for single-segment patterns the
// base name as well, so "*.sty" excludes files at any depth.
func matchAny(globs []glob.Glob, relPath string) bool {
	base := relPath
	if idx := strings.LastIndex(strings.TrimSuffix(relPath, "/"), "/"); idx >= 0 {
		base = relPath[idx+1:]
	}
	for _, g := range globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func looksLikeTeX(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, detectSniffSize))
	if err != nil {
		return false
	}
	return texdetect.IsTeX(path, head)
}
