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
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfig  = "config"
	FieldFormat  = "format"
	FieldParser  = "parser"
	FieldSolc    = "solc"
	FieldJobs    = "jobs"
	FieldTimeout = "timeout"
	FieldPack    = "pack"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesParsed      = "files_parsed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldParseFailures    = "parse_failures"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldSuppressed       = "suppressed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule     = "rule"
	FieldRules    = "rules"
	FieldCategory = "category"
	FieldSeverity = "severity"
	FieldData     = "data"

	// Documentation fields.
	FieldDescription = "description"
)
