package pretty

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/position"
	"github.com/yaklabco/solidhunter/pkg/runner"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

func rng(line, start, end int) position.Range {
	return position.Range{
		Start: position.Position{Line: line, Character: start},
		End:   position.Position{Line: line, Character: end},
	}
}

func TestMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		ranges []position.Range
		want   string
	}{
		{
			name:   "single range",
			line:   "    uint256 public x;",
			ranges: []position.Range{rng(3, 5, 12)},
			want:   "    ^~~~~~~",
		},
		{
			name:   "tabs are kept",
			line:   "\tfunction f() {}",
			ranges: []position.Range{rng(3, 2, 10)},
			want:   "\t^" + strings.Repeat("~", len("function")-1),
		},
		{
			name:   "wide characters",
			line:   `string s = "日本"; uint x;`,
			ranges: []position.Range{rng(3, 22, 26)},
			want:   strings.Repeat(" ", 19) + "^~~~",
		},
		{
			name:   "several ranges sorted",
			line:   "a(); b(); c();",
			ranges: []position.Range{rng(3, 11, 14), rng(3, 1, 4)},
			want:   "^~~       ^~~",
		},
		{
			name:   "range continues past the line",
			line:   "contract A {",
			ranges: []position.Range{{Start: position.Position{Line: 3, Character: 10}, End: position.Position{Line: 5, Character: 2}}},
			want:   "         ^~~",
		},
		{
			name:   "empty range",
			line:   "x;",
			ranges: []position.Range{rng(3, 3, 3)},
			want:   "  ^",
		},
		{
			name:   "other line",
			line:   "x;",
			ranges: []position.Range{rng(4, 1, 2)},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Markers(tt.line, 3, tt.ranges))
		})
	}
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)
	diag := &lint.Diagnostic{
		Range:          rng(2, 5, 9),
		Severity:       config.SeverityWarning,
		Message:        "Avoid to use inline assembly. It is acceptable only in rare cases",
		RuleID:         "no-inline-assembly",
		SameLineRanges: []position.Range{rng(2, 11, 12)},
	}

	out := styles.FormatDiagnostic("src/A.sol", diag, "    asm { x }")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  src/A.sol:2:5  warning  Avoid to use inline assembly. It is acceptable only in rare cases (+1 on this line)  (no-inline-assembly)", lines[0])
	assert.Equal(t, contextIndent+"    asm { x }", lines[1])
	assert.Equal(t, contextIndent+"    ^~~~  ^", lines[2])

	out = styles.FormatDiagnostic("src/A.sol", &lint.Diagnostic{Range: rng(1, 1, 2), Severity: config.SeverityHint, RuleID: "x"}, "")
	assert.Equal(t, "  src/A.sol:1:1  hint    (x)\n", out)
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "hint", styles.FormatSeverity(config.SeverityHint))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)
	assert.Equal(t, "A.sol", styles.FormatFileHeader("A.sol", 0))
	assert.Equal(t, "A.sol (1 issue)", styles.FormatFileHeader("A.sol", 1))
	assert.Equal(t, "A.sol (3 issues)", styles.FormatFileHeader("A.sol", 3))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)

	assert.Equal(t, "No issues found (1 file checked)\n",
		styles.FormatSummaryOneLine(runner.Stats{FilesParsed: 1}))

	got := styles.FormatSummaryOneLine(runner.Stats{
		FilesParsed:      4,
		FilesWithIssues:  2,
		DiagnosticsTotal: 5,
		DiagnosticsBySeverity: map[config.Severity]int{
			config.SeverityError:   1,
			config.SeverityWarning: 3,
			config.SeverityInfo:    1,
		},
		ParseFailures: 1,
		Suppressed:    2,
		FilesExcluded: 1,
	})
	assert.Equal(t, "5 issues (1 error, 3 warnings, 1 info) in 2 files, 1 file failed to parse, 2 suppressed, 1 ignored\n", got)
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)

	out := styles.FormatSummary(runner.Stats{FilesParsed: 2})
	assert.Contains(t, out, "Files checked:     2")
	assert.Contains(t, out, "Lint passed")

	out = styles.FormatSummary(runner.Stats{
		FilesParsed:           2,
		FilesWithIssues:       1,
		DiagnosticsTotal:      2,
		DiagnosticsBySeverity: map[config.Severity]int{config.SeverityWarning: 2},
	})
	assert.Contains(t, out, "Files with issues: 1")
	assert.Contains(t, out, "  Warning:         2")
	assert.Contains(t, out, "Lint completed with warnings")

	out = styles.FormatSummary(runner.Stats{ParseFailures: 1})
	assert.Contains(t, out, "Parse failures:    1")
	assert.Contains(t, out, "Lint failed with errors")
}

func TestTableFormatter(t *testing.T) {
	t.Parallel()

	file := solast.NewFile("/repo/src/Token.sol", "", nil)
	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "/repo/src/Clean.sol", Result: &lint.FileResult{File: file}},
		{Path: "/repo/src/Token.sol", Result: &lint.FileResult{File: file, Diagnostics: []lint.Diagnostic{{
			Range:          rng(4, 3, 5),
			Severity:       config.SeverityError,
			Message:        "Avoid to make time-based decisions in your business logic",
			RuleID:         "not-rely-on-time",
			SameLineRanges: []position.Range{rng(4, 20, 22)},
		}}}},
	}}

	tf := NewTableFormatter(NewStyles(false), false, 0)
	out := tf.FormatTable(result, func(p string) string { return strings.TrimPrefix(p, "/repo/") })
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], " FILE"))
	assert.Contains(t, lines[2], "src/Token.sol")
	assert.Contains(t, lines[2], "4:3")
	assert.Contains(t, lines[3], "4:20")
	assert.Contains(t, lines[5], "Legend")

	assert.Empty(t, tf.FormatTable(&runner.Result{}, nil))
	assert.Empty(t, tf.FormatTable(nil, nil))
}

func TestTableFormatter_FitsTerminal(t *testing.T) {
	t.Parallel()

	row := TableRow{
		File:     "/very/long/path/to/the/project/contracts/governance/Governor.sol",
		Location: "120:14",
		Message:  strings.Repeat("message ", 20),
		RuleID:   "reason-string",
	}
	tf := NewTableFormatter(NewStyles(false), false, 80)
	widths := tf.calculateColumnWidths([][]TableRow{{row}})
	assert.Equal(t, minMessageWidth, widths.message)
	assert.Equal(t, minFileWidth, widths.file)

	out := tf.formatRow(row, widths)
	assert.Contains(t, out, "...ance/Governor.sol")
	assert.Contains(t, out, "message message message message ...")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcd...", truncateString("abcdefghij", 7))
	assert.Equal(t, "ab", truncateString("abcdefghij", 2))
	assert.Equal(t, "...ij", truncateFilePath("abcdefghij", 5))
	assert.Equal(t, "hij", truncateFilePath("abcdefghij", 3))
	assert.Equal(t, "src/A.sol", truncateFilePath("src/A.sol", 20))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, IsColorEnabled("always", &buf))
	assert.False(t, IsColorEnabled("never", os.Stdout))
	assert.False(t, IsColorEnabled("auto", &buf), "buffers are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, IsColorEnabled("auto", os.Stdout))
}
