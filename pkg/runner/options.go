// Package runner expands paths into LaTeX sources and lints them
// concurrently through a lint.Pipeline.
package runner

import (
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

// Options describes one run.
type Options struct {
	// Paths lists files and directories to lint. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors the globs. Empty means
	// the process working directory.
	WorkingDir string

	// Extensions are lowercase with a leading dot. Empty means
	// config.DefaultExtensions.
	Extensions []string

	// DetectContent also admits files whose content looks like TeX.
	DetectContent bool

	// IncludeGlobs, when set, restricts discovered files to those matching
	// at least one pattern. ExcludeGlobs prune files and whole directories.
	IncludeGlobs []string
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs bounds concurrent files. Zero or less means runtime.NumCPU.
	Jobs int

	Config *config.Config

	// Pipeline, when non-nil, replaces the per-file options derived from
	// Config.
	Pipeline *lint.PipelineOptions
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	return config.DefaultExtensions()
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) > 0 {
		return o.Paths
	}
	return []string{"."}
}

func (o Options) pipelineOptions() lint.PipelineOptions {
	if o.Pipeline == nil {
		return lint.PipelineOptionsFromConfig(o.Config)
	}
	return *o.Pipeline
}
