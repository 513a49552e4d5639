package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// severityParts renders the non-zero severity counts, most severe first.
func (s *Styles) severityParts(bySeverity map[config.Severity]int) []string {
	var parts []string
	for _, sev := range config.Severities() {
		count := bySeverity[sev]
		if count == 0 {
			continue
		}
		label := fmt.Sprintf("%d %s", count, strings.ToLower(string(sev)))
		if sev != config.SeverityInfo && sev != config.SeverityHint {
			label += plural(count, "", "s")
		}
		parts = append(parts, s.severityStyle(sev).Render(label))
	}
	return parts
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 2 suppressed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesParsed, plural(stats.FilesParsed, wordFile, wordFiles))))
	} else {
		issues := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
		if severities := s.severityParts(stats.DiagnosticsBySeverity); len(severities) > 0 {
			issues += " (" + strings.Join(severities, ", ") + ")"
		}
		parts = append(parts, issues+fmt.Sprintf(" in %d %s",
			stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles)))
	}

	if stats.ParseFailures > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed to parse",
			stats.ParseFailures, plural(stats.ParseFailures, wordFile, wordFiles))))
	}
	if stats.Suppressed > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d suppressed", stats.Suppressed)))
	}
	if stats.FilesExcluded > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d ignored", stats.FilesExcluded)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.ParseFailures > 0 {
		row("Parse failures", s.Error.Render(strconv.Itoa(stats.ParseFailures)))
	}
	if stats.FilesExcluded > 0 {
		row("Files ignored", s.Dim.Render(strconv.Itoa(stats.FilesExcluded)))
	}
	if stats.FilesSkipped > 0 {
		row("Not Solidity", s.Dim.Render(strconv.Itoa(stats.FilesSkipped)))
	}

	builder.WriteString("\n")
	row("Total issues", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	for _, sev := range config.Severities() {
		if count := stats.DiagnosticsBySeverity[sev]; count > 0 {
			label := strings.ToUpper(string(sev[:1])) + strings.ToLower(string(sev[1:]))
			row("  "+label, s.severityStyle(sev).Render(strconv.Itoa(count)))
		}
	}
	if stats.Suppressed > 0 {
		row("Suppressed", s.Dim.Render(strconv.Itoa(stats.Suppressed)))
	}

	builder.WriteString("\n")

	switch {
	case stats.ParseFailures > 0 || stats.DiagnosticsBySeverity[config.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.DiagnosticsBySeverity[config.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
