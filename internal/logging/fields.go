package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldJobs     = "jobs"
	FieldFormat   = "format"
	FieldEmitJSON = "emit_json"
	FieldMaxDepth = "max_depth"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldFilesWritten     = "files_written"
	FieldTables           = "tables"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// HTTP fields.
	FieldAddr      = "addr"
	FieldMethod    = "method"
	FieldRoute     = "route"
	FieldStatus    = "status"
	FieldDuration  = "duration"
	FieldBytes     = "bytes"
	FieldRequestID = "request_id"
)
