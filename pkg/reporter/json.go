package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one file's diagnostics in the diagnostic boundary
// shape. Same-line findings stay folded into same_line_ranges.
type JSONFileResult struct {
	Path        string            `json:"path"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
	Error       string            `json:"error,omitempty"`
	Excluded    bool              `json:"excluded,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	FilesExcluded   int            `json:"filesExcluded"`
	TotalIssues     int            `json:"totalIssues"`
	Suppressed      int            `json:"suppressed"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

// Skipped outcomes are not Solidity and are left out.
func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: r.opts.Version,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		if file.Skipped {
			continue
		}

		fileResult := JSONFileResult{
			Path:        r.opts.displayPath(file.Path),
			Diagnostics: make([]lint.Diagnostic, 0),
			Excluded:    file.Excluded,
		}

		switch {
		case file.Error != nil:
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		case file.Excluded:
			output.Summary.FilesExcluded++
		case file.Result != nil:
			output.Summary.FilesChecked++
			output.Summary.Suppressed += file.Result.Suppressed
			fileResult.Diagnostics = append(fileResult.Diagnostics, file.Result.Diagnostics...)
			for _, diag := range file.Result.Diagnostics {
				severity := diag.Severity
				if severity == "" {
					severity = config.SeverityWarning
				}
				output.Summary.BySeverity[strings.ToLower(string(severity))] += diag.Occurrences()
			}
			count := file.Result.IssueCount()
			output.Summary.TotalIssues += count
			if count > 0 {
				output.Summary.FilesWithIssues++
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
