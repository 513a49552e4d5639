package pretty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/position"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output:
//
//	path:line:col  severity  message  (rule-id)
//
// With sourceLine set, the line is printed below it with a marker under
// every range the diagnostic covers on that line.
func (s *Styles) FormatDiagnostic(path string, diag *lint.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		diag.Range.Start.Line,
		diag.Range.Start.Character,
	)

	message := diag.Message
	if extra := len(diag.SameLineRanges); extra > 0 {
		message += s.Dim.Render(fmt.Sprintf(" (+%d on this line)", extra))
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(message),
		s.RuleID.Render("("+diag.RuleID+")"),
	))

	if sourceLine != "" {
		ranges := append([]position.Range{diag.Range}, diag.SameLineRanges...)
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Range.Start.Line, ranges))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	case config.SeverityHint:
		return s.Hint.Render("hint")
	default:
		return strings.ToLower(string(sev))
	}
}

// FormatSourceContext prints line with markers under the parts of it the
// ranges cover. Columns are byte offsets; the markers are placed by display
// width so that wide characters and tabs line up.
func (s *Styles) FormatSourceContext(line string, lineNumber int, ranges []position.Range) string {
	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	marker := Markers(line, lineNumber, ranges)
	if marker != "" {
		builder.WriteString(contextIndent + s.Caret.Render(marker) + "\n")
	}
	return builder.String()
}

// Markers returns the marker line for ranges on line lineNumber: "^" at the
// first column of each range followed by "~" across the rest of it. Ranges
// that continue past the line are marked to its end. Overlapping ranges
// keep the first marker drawn.
func Markers(line string, lineNumber int, ranges []position.Range) string {
	type span struct{ start, end int }

	var spans []span
	for _, rng := range ranges {
		if rng.Start.Line != lineNumber {
			continue
		}
		start := clamp(rng.Start.Character-1, 0, len(line))
		end := len(line)
		if rng.End.Line == lineNumber {
			end = clamp(rng.End.Character-1, start, len(line))
		}
		spans = append(spans, span{start, end})
	}
	if len(spans) == 0 {
		return ""
	}
	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })

	var builder strings.Builder
	cursor := 0
	for _, sp := range spans {
		if sp.start < cursor {
			continue
		}
		builder.WriteString(padding(line[cursor:sp.start]))
		width := max(runewidth.StringWidth(line[sp.start:sp.end]), 1)
		builder.WriteString("^" + strings.Repeat("~", width-1))
		cursor = max(sp.end, sp.start+1)
		cursor = min(cursor, len(line))
	}
	return builder.String()
}

// padding blanks text to its display width, keeping tabs so that the
// result lines up under the original.
func padding(text string) string {
	var builder strings.Builder
	for _, r := range text {
		if r == '\t' {
			builder.WriteRune('\t')
			continue
		}
		builder.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return builder.String()
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
