package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotexlint/internal/ui/pretty"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        10,
		FilesWithIssues:       3,
		TablesTotal:           7,
		DiagnosticsTotal:      15,
		DiagnosticsBySeverity: map[string]int{"error": 5, "warning": 10},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     10")
	assert.Contains(t, result, "Tables checked:    7")
	assert.Contains(t, result, "Files with issues: 3")
	assert.Contains(t, result, "Total issues:      15")
	assert.Contains(t, result, "Errors:          5")
	assert.Contains(t, result, "Warnings:        10")
	assert.Contains(t, result, "Lint failed with errors")
}

func TestFormatSummary_Status(t *testing.T) {
	styles := pretty.NewStyles(false)

	warnings := styles.FormatSummary(runner.Stats{
		DiagnosticsTotal:      1,
		DiagnosticsBySeverity: map[string]int{"warning": 1},
	})
	assert.Contains(t, warnings, "Lint completed with warnings")

	clean := styles.FormatSummary(runner.Stats{
		FilesProcessed:        2,
		FilesWritten:          2,
		DiagnosticsBySeverity: map[string]int{},
	})
	assert.Contains(t, clean, "Documents written: 2")
	assert.Contains(t, clean, "Lint passed")
	assert.NotContains(t, clean, "Files with issues")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "no issues",
			stats: runner.Stats{
				FilesProcessed:        1,
				TablesTotal:           2,
				DiagnosticsBySeverity: map[string]int{},
			},
			want: "No issues found (1 file, 2 tables checked)\n",
		},
		{
			name: "no issues with documents",
			stats: runner.Stats{
				FilesProcessed:        3,
				TablesTotal:           1,
				FilesWritten:          1,
				DiagnosticsBySeverity: map[string]int{},
			},
			want: "No issues found (3 files, 1 table checked), 1 document written\n",
		},
		{
			name: "warnings",
			stats: runner.Stats{
				FilesProcessed:        2,
				FilesWithIssues:       1,
				TablesTotal:           2,
				DiagnosticsTotal:      3,
				DiagnosticsBySeverity: map[string]int{"warning": 3},
			},
			want: "3 issues (3 warnings) in 1 file, 2 tables checked\n",
		},
		{
			name: "single issue with failure",
			stats: runner.Stats{
				FilesWithIssues:       1,
				FilesErrored:          2,
				TablesTotal:           1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[string]int{"error": 1},
			},
			want: "1 issue (1 error) in 1 file, 1 table checked, 2 files failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatConvertSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "written and unchanged",
			stats: runner.Stats{FilesProcessed: 3, FilesWritten: 2, DiagnosticsTotal: 4},
			want:  "2 documents written, 1 unchanged\n",
		},
		{
			name:  "skipped and failed",
			stats: runner.Stats{FilesProcessed: 2, FilesWritten: 1, FilesSkipped: 1, FilesErrored: 1},
			want:  "1 document written, 0 unchanged, 1 skipped, 1 file failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatConvertSummary(tt.stats))
		})
	}
}
