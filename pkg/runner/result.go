package runner

import (
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

// FileOutcome is what happened to one discovered file: exactly one of
// Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.FileResult
	Error  error
}

// Stats totals a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int

	// FilesSkipped counts sources that changed while being processed, so
	// their document was left alone.
	FilesSkipped int

	// FilesWritten counts JSON documents created or replaced.
	FilesWritten int

	TablesTotal           int
	DiagnosticsTotal      int
	DiagnosticsBySeverity map[string]int
}

// Result is the outcome of Runner.Run.
type Result struct {
	// Files is in discovery order.
	Files  []FileOutcome
	Stats  Stats
	Errors []error
}

// HasFailures reports whether any error-severity diagnostic was raised.
// Files that failed to process are counted in Stats.FilesErrored instead.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any diagnostic was raised.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: map[string]int{}}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.add(outcome)
}

func (s *Stats) add(outcome FileOutcome) {
	switch {
	case outcome.Error != nil:
		s.FilesErrored++
		return
	case outcome.Result == nil:
		return
	}

	fr := outcome.Result
	s.FilesProcessed++
	s.TablesTotal += fr.Tables
	s.DiagnosticsTotal += len(fr.Diagnostics)
	if fr.Skipped {
		s.FilesSkipped++
	}
	if fr.Written {
		s.FilesWritten++
	}
	if fr.HasIssues() {
		s.FilesWithIssues++
	}

	for _, diag := range fr.Diagnostics {
		sev := diag.Severity
		if sev == "" {
			sev = config.SeverityWarning
		}
		s.DiagnosticsBySeverity[string(sev)]++
	}
}
