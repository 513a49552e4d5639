// Package analysis folds a lint run into per-rule and per-file views for
// the summary renderers.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath converts an absolute path to a path relative to workDir.
// If workDir is empty or the path lies outside it, the original is returned.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) rule(ruleID string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[ruleID]; !ok {
		ctx.ruleMap[ruleID] = &RuleAnalysis{RuleID: ruleID}
		ctx.ruleFiles[ruleID] = make(map[string]bool)
	}
	return ctx.ruleMap[ruleID]
}

func newDiagnosticEntry(path string, diag *lint.Diagnostic) DiagnosticEntry {
	severity := diag.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}
	return DiagnosticEntry{
		FilePath:    path,
		RuleID:      diag.RuleID,
		Severity:    strings.ToLower(string(severity)),
		Message:     diag.Message,
		StartLine:   diag.Range.Start.Line,
		StartColumn: diag.Range.Start.Character,
		EndLine:     diag.Range.End.Line,
		EndColumn:   diag.Range.End.Character,
	}
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		ra.Files = lo.Keys(ctx.ruleFiles[ruleID])
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		fa.Rules = lo.Keys(ctx.fileRules[path])
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report. Aggregated diagnostics
// are expanded, so every same-line finding counts on its own.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			report.Totals.ParseFailures++
			continue
		case file.Excluded:
			report.Totals.Excluded++
			continue
		case file.Skipped || file.Result == nil:
			continue
		}

		report.Totals.Files++
		report.Totals.Suppressed += file.Result.Suppressed
		if !file.Result.HasIssues() {
			continue
		}
		report.Totals.FilesWithIssues++

		displayPath := RelativePath(file.Path, opts.WorkingDir)
		fa := ctx.file(displayPath)

		for _, diag := range lint.Unaggregate(file.Result.Diagnostics) {
			report.Totals.Issues++
			report.Totals.add(diag.Severity)

			fa.Issues++
			fa.add(diag.Severity)
			ctx.fileRules[displayPath][diag.RuleID] = true

			ra := ctx.rule(diag.RuleID)
			ra.Issues++
			ra.add(diag.Severity)
			ctx.ruleFiles[diag.RuleID][displayPath] = true

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, newDiagnosticEntry(displayPath, &diag))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}

// compareSeverity orders errors first, then warnings, then the total.
func compareSeverity(left, right SeverityCounts, leftIssues, rightIssues int) int {
	if result := cmp.Compare(right.Errors, left.Errors); result != 0 {
		return result
	}
	if result := cmp.Compare(right.Warnings, left.Warnings); result != 0 {
		return result
	}
	return cmp.Compare(rightIssues, leftIssues)
}

func compareCount(left, right int, desc bool) int {
	if desc {
		return cmp.Compare(right, left)
	}
	return cmp.Compare(left, right)
}

// Ties always fall back to the name so output is stable.
func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
		case SortBySeverity:
			result = compareSeverity(left.SeverityCounts, right.SeverityCounts, left.Issues, right.Issues)
		default:
			result = compareCount(left.Issues, right.Issues, desc)
		}
		return cmp.Or(result, cmp.Compare(left.RuleID, right.RuleID))
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
		case SortBySeverity:
			result = compareSeverity(left.SeverityCounts, right.SeverityCounts, left.Issues, right.Issues)
		default:
			result = compareCount(left.Issues, right.Issues, desc)
		}
		return cmp.Or(result, cmp.Compare(left.Path, right.Path))
	})
}
