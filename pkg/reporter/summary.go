package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/solidhunter/internal/ui/pretty"
	"github.com/yaklabco/solidhunter/pkg/analysis"
)

// Both summary tables share one width.
const (
	tableWidth   = 90
	ruleColWidth = 36
	fileColWidth = 54
	numColWidth  = 7
	warnColWidth = 9
	maxRuleWidth = 34
	maxFileWidth = 52
)

// padRight pads s to width display columns. Pad before styling.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// padLeft pads s on the left to width display columns. Pad before styling.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		r.renderFailures(report.Totals)
		return nil
	}

	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderRuleTable(report.ByRule)
	} else {
		r.renderRuleTable(report.ByRule)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)
	r.renderFailures(report.Totals)

	return nil
}

func (r *SummaryRenderer) separator() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) countHeaders() string {
	return fmt.Sprintf("%s %s %s %s",
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Other", numColWidth)),
	)
}

func countCells(issues int, counts analysis.SeverityCounts) string {
	return fmt.Sprintf("%s %s %s %s",
		padLeft(strconv.Itoa(issues), numColWidth),
		padLeft(strconv.Itoa(counts.Errors), numColWidth),
		padLeft(strconv.Itoa(counts.Warnings), warnColWidth),
		padLeft(strconv.Itoa(counts.Infos+counts.Hints), numColWidth),
	)
}

// styleName colors a padded name cell by its most severe finding.
func (r *SummaryRenderer) styleName(name string, counts analysis.SeverityCounts) string {
	switch {
	case counts.Errors > 0:
		return r.styles.TableErrorRow.Render(name)
	case counts.Warnings > 0:
		return r.styles.TableWarnRow.Render(name)
	default:
		return name
	}
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	r.separator()
	fmt.Fprintf(r.out, "%s %s\n", r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)), r.countHeaders())
	r.separator()

	for _, rule := range rules {
		name := runewidth.Truncate(rule.RuleID, maxRuleWidth, "…")
		fmt.Fprintf(r.out, "%s %s\n",
			r.styleName(padRight(name, ruleColWidth), rule.SeverityCounts),
			countCells(rule.Issues, rule.SeverityCounts),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	r.separator()
	fmt.Fprintf(r.out, "%s %s\n", r.styles.TableHeader.Render(padRight("File", fileColWidth)), r.countHeaders())
	r.separator()

	for _, file := range files {
		path := file.Path
		if runewidth.StringWidth(path) > maxFileWidth {
			runes := []rune(path)
			path = "…" + string(runes[len(runes)-(maxFileWidth-1):])
		}
		fmt.Fprintf(r.out, "%s %s\n",
			r.styleName(padRight(path, fileColWidth), file.SeverityCounts),
			countCells(file.Issues, file.SeverityCounts),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	issues := fmt.Sprintf("%d %s", totals.Issues, pluralize(totals.Issues, "issue", "issues"))

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts,
			r.styles.Error.Render(fmt.Sprintf("%d %s", totals.Errors, pluralize(totals.Errors, "error", "errors"))))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts,
			r.styles.Warning.Render(fmt.Sprintf("%d %s", totals.Warnings, pluralize(totals.Warnings, "warning", "warnings"))))
	}
	if other := totals.Infos + totals.Hints; other > 0 {
		severityParts = append(severityParts, r.styles.Info.Render(fmt.Sprintf("%d other", other)))
	}
	if len(severityParts) > 0 {
		issues += " (" + strings.Join(severityParts, ", ") + ")"
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+issues+
		fmt.Sprintf(" in %d %s", totals.FilesWithIssues, pluralize(totals.FilesWithIssues, "file", "files")))
}

func (r *SummaryRenderer) renderFailures(totals analysis.Totals) {
	if totals.ParseFailures > 0 {
		fmt.Fprintln(r.out, r.styles.Error.Render(fmt.Sprintf("%d %s failed to parse",
			totals.ParseFailures, pluralize(totals.ParseFailures, "file", "files"))))
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
