package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/yaklabco/gotexlint/pkg/analysis"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolName       = "gotexlint"
	toolURI        = "https://github.com/yaklabco/gotexlint"
)

// SARIFLog is the root of a SARIF 2.1.0 document.
type SARIFLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun holds one lint run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one check that reported at least one result.
type SARIFRule struct {
	ID               string    `json:"id"`
	Name             string    `json:"name,omitempty"`
	ShortDescription SARIFText `json:"shortDescription"`
}

type SARIFText struct {
	Text string `json:"text"`
}

// SARIFResult is one diagnostic. RuleIndex points into the driver's rules.
type SARIFResult struct {
	RuleID     string          `json:"ruleId"`
	RuleIndex  int             `json:"ruleIndex"`
	Level      string          `json:"level"`
	Message    SARIFText       `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// SARIFInvocation records files that could not be processed.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFRenderer writes the analysis report as SARIF for code scanning
// dashboards.
type SARIFRenderer struct {
	opts Options
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(BuildSARIF(report, r.opts.ToolVersion)); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

// BuildSARIF converts report into a single-run SARIF log. Rules appear in
// the order they first report.
func BuildSARIF(report *analysis.Report, version string) *SARIFLog {
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           toolName,
			Version:        version,
			InformationURI: toolURI,
			Rules:          []SARIFRule{},
		}},
		Results: []SARIFResult{},
	}

	ruleIndex := make(map[string]int)
	for _, d := range report.Diagnostics {
		idx, ok := ruleIndex[d.RuleID]
		if !ok {
			idx = len(run.Tool.Driver.Rules)
			ruleIndex[d.RuleID] = idx
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
				ID:               d.RuleID,
				Name:             d.RuleName,
				ShortDescription: SARIFText{Text: d.Message},
			})
		}

		run.Results = append(run.Results, SARIFResult{
			RuleID:     d.RuleID,
			RuleIndex:  idx,
			Level:      sarifLevel(d.Severity),
			Message:    SARIFText{Text: d.Message},
			Locations:  []SARIFLocation{sarifLocation(d.FilePath, d.Line, d.Column)},
			Properties: map[string]any{"table": d.Table},
		})
	}

	var failed []SARIFNotification
	for _, f := range report.Files {
		if f.Error == "" {
			continue
		}
		failed = append(failed, SARIFNotification{
			Level:     "error",
			Message:   SARIFText{Text: f.Error},
			Locations: []SARIFLocation{sarifLocation(f.Path, 0, 0)},
		})
	}
	if len(failed) > 0 {
		run.Invocations = []SARIFInvocation{{ExecutionSuccessful: false, ToolExecutionNotifications: failed}}
	}

	return &SARIFLog{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
}

func sarifLocation(path string, line, column int) SARIFLocation {
	loc := SARIFLocation{PhysicalLocation: SARIFPhysicalLocation{
		ArtifactLocation: SARIFArtifactLocation{URI: filepath.ToSlash(path)},
	}}
	if line > 0 {
		loc.PhysicalLocation.Region = &SARIFRegion{StartLine: line, StartColumn: column}
	}
	return loc
}

// sarifLevel maps a severity to a SARIF level. Info becomes "note".
func sarifLevel(severity string) string {
	switch severity {
	case "error":
		return "error"
	case "info":
		return "note"
	default:
		return "warning"
	}
}
