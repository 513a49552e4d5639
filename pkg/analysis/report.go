package analysis

import (
	"time"

	"github.com/yaklabco/solidhunter/pkg/config"
)

// Report contains pre-computed views of lint results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Diagnostics is the flat list, one entry per finding.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByFile groups findings by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups findings by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is a single finding. Lines and columns are 1-based; the
// end column is exclusive.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	RuleID      string `json:"ruleId"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// SeverityCounts splits a number of findings by severity.
type SeverityCounts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Hints    int `json:"hints"`
}

func (c *SeverityCounts) add(sev config.Severity) {
	switch sev {
	case config.SeverityError:
		c.Errors++
	case config.SeverityInfo:
		c.Infos++
	case config.SeverityHint:
		c.Hints++
	default:
		c.Warnings++
	}
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	SeverityCounts

	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	Issues          int `json:"totalIssues"`
	ParseFailures   int `json:"parseFailures"`
	Excluded        int `json:"filesIgnored"`
	Suppressed      int `json:"suppressed"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	SeverityCounts

	Path   string   `json:"path"`
	Issues int      `json:"issues"`
	Rules  []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	SeverityCounts

	RuleID string   `json:"ruleId"`
	Issues int      `json:"issues"`
	Files  []string `json:"files,omitempty"`
}
