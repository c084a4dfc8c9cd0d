package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/gotexlint/pkg/analysis"
)

// HTMLRenderer writes the analysis report as a standalone HTML page. The
// body is the Markdown report converted by goldmark.
type HTMLRenderer struct {
	opts Options
	md   goldmark.Markdown
}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{
		opts: opts,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	var source bytes.Buffer
	writeMarkdown(&source, r.opts.title(), report, r.opts.ShowSummary)

	var body bytes.Buffer
	if err := r.md.Convert(source.Bytes(), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprintf(bw, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString(r.opts.title()))
	if _, err := bw.Write(body.Bytes()); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	fmt.Fprint(bw, "</body>\n</html>\n")
	return nil
}
