// Package reporter writes lint run results as styled text, tables, JSON,
// Markdown, HTML or SARIF.
//
// Text and table output stream straight from a runner.Result. The document
// formats first reduce the result to an analysis.Report and hand it to a
// Renderer.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gotexlint/pkg/analysis"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

// Reporter writes a run result and returns the number of issues reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents an analyzed report. Renderers hold no per-run state.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// analyzed adapts a Renderer to the Reporter interface.
type analyzed struct {
	render Renderer
	opts   analysis.Options
}

var _ Reporter = analyzed{}

func (a analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.render.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func withAnalysis(r Renderer, opts Options) analyzed {
	aopts := analysis.DefaultOptions()
	aopts.RuleFormat = opts.RuleFormat
	aopts.WorkingDir = opts.WorkingDir
	if opts.SortBy != "" {
		aopts.SortBy = opts.SortBy
	}
	return analyzed{render: r, opts: aopts}
}

// New returns the Reporter for opts.Format. An empty format means text and
// a nil Writer means stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.SortBy != "" && !opts.SortBy.IsValid() {
		return nil, fmt.Errorf("unsupported sort order: %s", opts.SortBy)
	}

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return withAnalysis(NewJSONRenderer(opts), opts), nil
	case FormatMarkdown:
		return withAnalysis(NewMarkdownRenderer(opts), opts), nil
	case FormatHTML:
		return withAnalysis(NewHTMLRenderer(opts), opts), nil
	case FormatSARIF:
		return withAnalysis(NewSARIFRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
