package runner

import (
	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
)

// FileOutcome is what happened to one discovered file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result holds the lint result. It is nil when the file could not be
	// read or parsed, or was skipped.
	Result *lint.FileResult

	// Error is set if the file could not be read or parsed.
	Error error

	// Skipped is set for files whose content is not Solidity.
	Skipped bool

	// Excluded is set for files matched by an ignore file; they carry an
	// empty Result.
	Excluded bool
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files with an AST.
	FilesParsed int

	// FilesSkipped is the number of files that are not Solidity.
	FilesSkipped int

	// FilesExcluded is the number of files matched by ignore files.
	FilesExcluded int

	// ParseFailures is the number of files that could not be read or parsed.
	ParseFailures int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// DiagnosticsTotal counts findings, each same-line range included.
	DiagnosticsTotal int

	// DiagnosticsBySeverity splits DiagnosticsTotal by severity.
	DiagnosticsBySeverity map[config.Severity]int

	// Suppressed counts findings silenced by directives.
	Suppressed int

	// RuleErrors counts rules that failed on a file.
	RuleErrors int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether the run should fail: any error finding or
// parse failure, or with strict any warning.
func (r *Result) HasFailures(strict bool) bool {
	if r == nil {
		return false
	}
	if r.Stats.ParseFailures > 0 || r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0 {
		return true
	}
	return strict && r.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Outcome returns the outcome for path.
func (r *Result) Outcome(path string) (FileOutcome, bool) {
	for _, outcome := range r.Files {
		if outcome.Path == path {
			return outcome, true
		}
	}
	return FileOutcome{}, false
}

func newResult(size int) *Result {
	return &Result{
		Files: make([]FileOutcome, 0, size),
		Stats: Stats{DiagnosticsBySeverity: make(map[config.Severity]int)},
	}
}

// accumulate appends an outcome and folds it into the stats.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.ParseFailures++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	case outcome.Excluded:
		r.Stats.FilesExcluded++
		return
	case outcome.Result == nil:
		return
	}

	r.Stats.FilesParsed++
	r.Stats.Suppressed += outcome.Result.Suppressed
	r.Stats.RuleErrors += len(outcome.Result.RuleErrors)

	count := outcome.Result.IssueCount()
	r.Stats.DiagnosticsTotal += count
	if count > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range outcome.Result.Diagnostics {
		severity := diag.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[severity] += diag.Occurrences()
	}
}
