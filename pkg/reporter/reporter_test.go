package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/reporter"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "SARIF", want: reporter.FormatSARIF},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestParseSummaryOrder(t *testing.T) {
	t.Parallel()

	got, err := reporter.ParseSummaryOrder("")
	require.NoError(t, err)
	assert.Equal(t, reporter.SummaryOrderRules, got)

	got, err = reporter.ParseSummaryOrder("Files")
	require.NoError(t, err)
	assert.Equal(t, reporter.SummaryOrderFiles, got)

	_, err = reporter.ParseSummaryOrder("authors")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "sarif reporter", format: reporter.FormatSARIF},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, rep)

			count, err := rep.Report(context.Background(), newResult())
			require.NoError(t, err)
			assert.Equal(t, 3, count)
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		ShowContext: true,
		GroupByFile: true,
		WorkingDir:  "/p",
	})

	count, err := rep.Report(context.Background(), newResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	output := buf.String()
	assert.Contains(t, output, "src/Broken.sol: error: parse /p/src/Broken.sol: ParserError")
	assert.Contains(t, output, "src/Token.sol (3 issues)\n")
	assert.Contains(t, output, "  src/Token.sol:2:10  error  Contract name should be in CamelCase  (contract-name-camelcase)\n")
	assert.Contains(t, output, "Code contains empty blocks (+1 on this line)  (no-empty-blocks)")
	assert.Contains(t, output, "    function f() public {}\n")
	assert.Contains(t, output, "    ^~~~~~~~            ^~\n")
	assert.NotContains(t, output, "Clean.sol")
	assert.NotContains(t, output, "board.sol")
	assert.True(t, strings.HasSuffix(output,
		"3 issues (1 error, 2 warnings) in 1 file, 1 file failed to parse, 1 suppressed, 1 ignored\n"), output)
}

func TestTextReporter_Flat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: "/p"})

	_, err := rep.Report(context.Background(), newResult())
	require.NoError(t, err)

	output := buf.String()
	assert.NotContains(t, output, "(3 issues)")
	assert.NotContains(t, output, "function f()")
	assert.NotContains(t, output, "suppressed")
	assert.Equal(t, 2, strings.Count(output, "src/Token.sol:"))
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, "No files to check.\n", buf.String())

	buf.Reset()
	count, err = rep.Report(context.Background(), cleanResult())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, "No issues found (1 file checked)\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: "/p", Version: "1.2.3"})

	count, err := rep.Report(context.Background(), newResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.2.3", output.Version)
	require.Len(t, output.Files, 4, "skipped files are left out")
	assert.Equal(t, "src/Broken.sol", output.Files[0].Path)
	assert.Contains(t, output.Files[0].Error, "ParserError")
	assert.Empty(t, output.Files[1].Diagnostics)
	assert.True(t, output.Files[3].Excluded)

	token := output.Files[2]
	require.Len(t, token.Diagnostics, 2, "same-line findings stay folded")
	assert.Equal(t, "no-empty-blocks", token.Diagnostics[1].RuleID)
	assert.Len(t, token.Diagnostics[1].SameLineRanges, 1)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:    2,
		FilesWithIssues: 1,
		FilesErrored:    1,
		FilesExcluded:   1,
		TotalIssues:     3,
		Suppressed:      1,
		BySeverity:      map[string]int{"error": 1, "warning": 2},
	}, output.Summary)
}

func TestJSONReporter_DiagnosticBoundary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: "/p", Compact: true})

	_, err := rep.Report(context.Background(), newResult())
	require.NoError(t, err)

	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 1)

	var raw struct {
		Files []struct {
			Diagnostics []map[string]any `json:"diagnostics"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	diag := raw.Files[2].Diagnostics[0]
	assert.Equal(t, "contract-name-camelcase", diag["id"])
	assert.Equal(t, "ERROR", diag["severity"])
	assert.Equal(t, "/p/src/Token.sol", diag["uri"])
	assert.Equal(t, map[string]any{
		"start": map[string]any{"line": 2.0, "character": 10.0},
		"end":   map[string]any{"line": 2.0, "character": 15.0},
	}, diag["range"])
	assert.NotContains(t, diag, "same_line_ranges")
	assert.NotContains(t, diag, "code")
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf}).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Empty(t, output.Files)
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSARIFReporter(reporter.Options{
		Writer:     &buf,
		WorkingDir: "/p",
		Version:    "1.2.3",
		Rules: []lint.Documentation{{
			ID:          "no-empty-blocks",
			Severity:    config.SeverityWarning,
			Description: "Code blocks must not be empty.",
			Category:    "best-practices",
		}},
	})

	count, err := rep.Report(context.Background(), newResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "2.1.0", output.Version)
	require.Len(t, output.Runs, 1)
	run := output.Runs[0]

	assert.Equal(t, "solidhunter", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "contract-name-camelcase", run.Tool.Driver.Rules[0].ID)
	assert.Nil(t, run.Tool.Driver.Rules[0].ShortDescription)
	assert.Equal(t, "Code blocks must not be empty.", run.Tool.Driver.Rules[1].ShortDescription.Text)

	require.Len(t, run.Results, 3, "same-line findings are expanded")
	assert.Equal(t, "error", run.Results[0].Level)
	assert.Equal(t, 1, run.Results[2].RuleIndex)
	assert.Equal(t, reporter.SARIFRegion{StartLine: 3, StartColumn: 5, EndLine: 3, EndColumn: 13},
		run.Results[2].Locations[0].PhysicalLocation.Region)
	assert.Equal(t, "src/Token.sol", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)

	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
	require.Len(t, run.Invocations[0].ToolExecutionNotifications, 1)
	assert.Equal(t, "src/Broken.sol",
		run.Invocations[0].ToolExecutionNotifications[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestSARIFReporter_SeverityLevels(t *testing.T) {
	t.Parallel()

	result := cleanResult()
	result.Files[0].Result.Diagnostics = []lint.Diagnostic{
		{RuleID: "a", Severity: config.SeverityInfo},
		{RuleID: "b", Severity: config.SeverityHint},
		{RuleID: "c"},
	}

	var buf bytes.Buffer
	_, err := reporter.NewSARIFReporter(reporter.Options{Writer: &buf}).Report(context.Background(), result)
	require.NoError(t, err)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	levels := make([]string, 0, 3)
	for _, res := range output.Runs[0].Results {
		levels = append(levels, res.Level)
	}
	assert.Equal(t, []string{"note", "note", "warning"}, levels)
	assert.Empty(t, output.Runs[0].Invocations)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/p",
	})

	count, err := rep.Report(context.Background(), newResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	output := buf.String()
	assert.Contains(t, output, "src/Broken.sol: error:")
	assert.Equal(t, 3, strings.Count(output, "src/Token.sol"))
	assert.Contains(t, output, "2:10")
	assert.Contains(t, output, "3:5")
	assert.Contains(t, output, "2 files checked")
}

func TestTableReporter_Clean(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), cleanResult())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, "All files passed!\n1 files checked\n", buf.String())
}
