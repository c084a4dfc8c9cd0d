package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/docdiff"
	"github.com/yaklabco/gotexlint/pkg/fsutil"
	"github.com/yaklabco/gotexlint/pkg/latex"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the source could not be parsed.
	ErrParseFailure = errors.New("parse failure")

	// ErrConvertFailure indicates the syntax tree could not be converted.
	ErrConvertFailure = errors.New("convert failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// documentMode is the permission of emitted JSON documents.
const documentMode os.FileMode = 0o644

// DocumentExt is the extension of converted documents. Inputs with it are
// decoded and linted as they are; nothing is written for them.
const DocumentExt = ".json"

// FileResult contains the result of processing a single file.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the source file state when it was read.
	// Nil for in-memory content.
	OriginalInfo *fsutil.FileInfo

	// Tree is the canonical document tree.
	Tree []texast.Node

	// Tables is the number of table environments linted.
	Tables int

	// TablePositions holds where each table begins, in document order.
	TablePositions []latex.Position

	// Diagnostics contains all failed checks, table by table.
	Diagnostics []Diagnostic

	// JSONPath is where the canonical document was written, if it was.
	JSONPath string

	// Written is true if the JSON document changed on disk.
	Written bool

	// BackupCreated is true if a previous JSON document was backed up.
	BackupCreated bool

	// Diff is how the JSON document would change, set in dry-run mode.
	// Nil when the document is up to date.
	Diff *docdiff.Diff

	// Skipped is true if the JSON document was not written.
	Skipped bool

	// SkipReason explains why the document was skipped.
	SkipReason string
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// TableWarnings groups the warning messages by table, in document order.
// Tables without warnings yield empty slices.
func (fr *FileResult) TableWarnings() [][]string {
	warnings := make([][]string, fr.Tables)
	for i := range warnings {
		warnings[i] = []string{}
	}
	for _, d := range fr.Diagnostics {
		if d.Table >= 1 && d.Table <= fr.Tables {
			warnings[d.Table-1] = append(warnings[d.Table-1], d.Message)
		}
	}
	return warnings
}

// Summary returns a human-readable summary of the result.
func (fr *FileResult) Summary() string {
	switch {
	case fr.Skipped:
		return "skipped: " + fr.SkipReason
	case fr.HasIssues():
		return "issues found"
	case fr.Written:
		return "ok (document written)"
	case fr.Diff != nil:
		return "ok (document would change)"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// EmitJSON writes the canonical document next to the source.
	EmitJSON bool

	// Indent pretty-prints the emitted document.
	Indent bool

	// Backup configures backups of a JSON document about to be replaced.
	Backup fsutil.BackupConfig

	// DryRun computes FileResult.Diff instead of writing the document.
	DryRun bool
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		EmitJSON: false,
		Indent:   true,
		Backup:   fsutil.DefaultBackupConfig(),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg != nil {
		opts.EmitJSON = cfg.EmitJSON
	}
	return opts
}

// Pipeline reads, parses, converts, and lints one document at a time.
type Pipeline struct {
	// Engine runs the table checks.
	Engine *Engine

	// Parser produces the syntax tree.
	Parser Parser
}

// NewPipeline creates a pipeline with the given engine and parser.
func NewPipeline(engine *Engine, parser Parser) *Pipeline {
	return &Pipeline{Engine: engine, Parser: parser}
}

// NewPipelineFromConfig builds the engine and parser described by cfg over
// registry.
func NewPipelineFromConfig(registry *Registry, cfg *config.Config) *Pipeline {
	var opts []latex.Option
	if cfg != nil && cfg.MaxDepth > 0 {
		opts = append(opts, latex.WithMaxDepth(cfg.MaxDepth))
	}
	return NewPipeline(NewEngine(registry, cfg), latex.New(opts...))
}

// JSONPath returns the path of the canonical document for a source file:
// the source path with its extension replaced by ".json".
func JSONPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
}

// ProcessFile runs the pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read the source file.
//  2. Parse, convert, and lint every table.
//  3. If requested and the source is unchanged since step 1, write the
//     document atomically, backing up a previous document that differs.
//
// A path ending in DocumentExt is a converted document: it is decoded and
// linted by ProcessDocument and step 3 never applies.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	if strings.EqualFold(filepath.Ext(path), DocumentExt) {
		result, err := p.ProcessDocument(ctx, path, content)
		if err != nil {
			return nil, err
		}
		result.OriginalInfo = info
		if opts.EmitJSON {
			result.Skipped = true
			result.SkipReason = "input is already a converted document"
		}
		return result, nil
	}

	result, err := p.ProcessContent(ctx, path, content)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !opts.EmitJSON {
		return result, nil
	}

	modified, err := fsutil.Changed(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "source modified during processing"
		return result, nil
	}

	if err := p.emit(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessContent runs parse, convert, and lint over in-memory content.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	nodes, err := p.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	tree, err := texast.ConvertRoot(nodes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConvertFailure, path, err)
	}

	result := &FileResult{
		Path: path,
		Tree: tree,
	}

	envs := latex.Environments(nodes, texast.TableEnvironment)
	positions := make([]latex.Position, len(envs))
	for i, env := range envs {
		positions[i] = env.Pos()
	}
	p.lintTables(result, positions)

	return result, nil
}

// ProcessDocument lints a document written by an earlier conversion, in
// either the current layout or the legacy one. Decoded documents carry no
// source positions, so every table is reported at 0:0.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string, content []byte) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	tree, err := texast.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, path, err)
	}

	result := &FileResult{
		Path: path,
		Tree: tree,
	}
	p.lintTables(result, nil)
	return result, nil
}

// lintTables runs the engine over every table of result.Tree. positions
// holds where each table begins; missing entries stay at the zero position.
func (p *Pipeline) lintTables(result *FileResult, positions []latex.Position) {
	views := texast.Tables(result.Tree)
	result.Tables = len(views)
	result.TablePositions = make([]latex.Position, len(views))

	for i, view := range views {
		if i < len(positions) {
			result.TablePositions[i] = positions[i]
		}
		pos := result.TablePositions[i]

		diags := p.Engine.Diagnostics(view)
		for j := range diags {
			diags[j].FilePath = result.Path
			diags[j].Table = i + 1
			diags[j].Line = pos.Line
			diags[j].Column = pos.Column
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}
}

func (p *Pipeline) emit(ctx context.Context, result *FileResult, opts PipelineOptions) error {
	var buf bytes.Buffer
	if err := texast.Encode(&buf, result.Tree, opts.Indent); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	target := JSONPath(result.Path)
	if target == result.Path {
		return fmt.Errorf("%w: %s: refusing to overwrite source", ErrWriteFailure, result.Path)
	}

	current, err := os.ReadFile(target)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.JSONPath = target

	if opts.DryRun {
		result.Diff = docdiff.Compute(target, current, buf.Bytes())
		return nil
	}
	if err == nil && bytes.Equal(current, buf.Bytes()) {
		return nil
	}

	// Only a document about to be replaced is backed up.
	created, err := fsutil.CreateBackup(ctx, target, opts.Backup)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	result.BackupCreated = created

	written, err := fsutil.WriteIfChanged(ctx, target, buf.Bytes(), documentMode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = written
	return nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrConvertFailure) ||
		errors.Is(err, ErrWriteFailure)
}
