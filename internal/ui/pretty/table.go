package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // FILE, LOC, MESSAGE, RULE
	minFileWidth     = 20
	minLocWidth      = 8
	minMessageWidth  = 35
	minRuleWidth     = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableRow represents a single row in the diagnostic table.
type TableRow struct {
	File     string
	Location string
	Message  string
	RuleID   string
	Severity config.Severity
}

// TableFormatter formats diagnostics as a styled table that fits the
// terminal width. Widths are display widths, so wide characters in
// messages and paths do not break alignment.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats runner results as a styled table. displayPath maps
// outcome paths to what is shown; nil shows them unchanged.
func (t *TableFormatter) FormatTable(result *runner.Result, displayPath func(string) string) string {
	if result == nil {
		return ""
	}
	if displayPath == nil {
		displayPath = func(p string) string { return p }
	}

	groups := t.collectRows(result, displayPath)
	if len(groups) == 0 {
		return ""
	}
	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")
	return builder.String()
}

// collectRows collects diagnostic rows grouped by file. Folded same-line
// findings become rows of their own.
func (t *TableFormatter) collectRows(result *runner.Result, displayPath func(string) string) [][]TableRow {
	var groups [][]TableRow

	for _, file := range result.Files {
		if file.Result == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		diags := lint.Unaggregate(file.Result.Diagnostics)
		rows := make([]TableRow, 0, len(diags))
		for i := range diags {
			rows = append(rows, DiagnosticToTableRow(displayPath(file.Path), &diags[i]))
		}
		groups = append(groups, rows)
	}

	return groups
}

type columnWidths struct {
	file    int
	loc     int
	message int
	rule    int
}

func (w columnWidths) total() int {
	return w.file + w.loc + w.message + w.rule + tablePadding*tableColumnCount
}

// calculateColumnWidths sizes columns to their content, then shrinks the
// message and file columns to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		loc:     minLocWidth,
		message: minMessageWidth,
		rule:    minRuleWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, runewidth.StringWidth(row.File))
			widths.loc = max(widths.loc, runewidth.StringWidth(row.Location))
			widths.message = max(widths.message, runewidth.StringWidth(row.Message))
			widths.rule = max(widths.rule, runewidth.StringWidth(row.RuleID))
		}
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.message = max(minMessageWidth, widths.message-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + strings.Join([]string{
		runewidth.FillRight("FILE", widths.file),
		runewidth.FillRight("LOC", widths.loc),
		runewidth.FillRight("MESSAGE", widths.message),
		runewidth.FillRight("RULE", widths.rule),
	}, "  ")
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

// formatRow pads every cell before styling so ANSI codes do not count
// towards widths.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := " " + strings.Join([]string{
		runewidth.FillRight(truncateFilePath(row.File, widths.file), widths.file),
		runewidth.FillRight(truncateString(row.Location, widths.loc), widths.loc),
		runewidth.FillRight(truncateString(row.Message, widths.message), widths.message),
		runewidth.FillRight(truncateString(row.RuleID, widths.rule), widths.rule),
	}, "  ")
	return t.getRowStyle(row.Severity).Render(content)
}

func (t *TableFormatter) getRowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: rows are ordered by file, then position")
	}

	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = error  %s = warning  %s = info",
		t.styles.TableErrorRow.Render(" error "),
		t.styles.TableWarnRow.Render(" warning "),
		t.styles.TableInfoRow.Render(" info "),
	))
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d %s checked", stats.FilesParsed, plural(stats.FilesParsed, wordFile, wordFiles))}
	parts = append(parts, t.styles.severityParts(stats.DiagnosticsBySeverity)...)
	if stats.ParseFailures > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d parse failures", stats.ParseFailures)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

// truncateString shortens str to maxWidth display columns, ending in "...".
func truncateString(str string, maxWidth int) string {
	if runewidth.StringWidth(str) <= maxWidth {
		return str
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(str, maxWidth, "")
	}
	return runewidth.Truncate(str, maxWidth, ellipsis)
}

// truncateFilePath shortens a path from the left so the file name stays.
func truncateFilePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	runes := []rune(path)
	keep := maxWidth - len(ellipsis)
	if maxWidth <= len(ellipsis) {
		keep = max(maxWidth, 0)
	}
	width := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > keep {
			break
		}
		width += w
		start--
	}
	if maxWidth <= len(ellipsis) {
		return string(runes[start:])
	}
	return ellipsis + string(runes[start:])
}

// DiagnosticToTableRow converts a lint diagnostic to a table row.
func DiagnosticToTableRow(path string, diag *lint.Diagnostic) TableRow {
	return TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", diag.Range.Start.Line, diag.Range.Start.Character),
		Message:  diag.Message,
		RuleID:   diag.RuleID,
		Severity: diag.Severity,
	}
}
