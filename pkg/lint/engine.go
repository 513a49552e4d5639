package lint

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/solidhunter/pkg/solast"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// File is the linted file.
	File *solast.File

	// Diagnostics contains the aggregated findings.
	Diagnostics []Diagnostic

	// Suppressed counts findings silenced by directives.
	Suppressed int

	// RuleErrors records rules that panicked, keyed by rule id.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the number of findings, counting folded same-line ranges.
func (fr *FileResult) IssueCount() int {
	count := 0
	for i := range fr.Diagnostics {
		count += fr.Diagnostics[i].Occurrences()
	}
	return count
}

// Engine runs a fixed set of rules over files.
type Engine struct {
	// Rules are run in this order; their output is concatenated in it.
	Rules []Rule

	// Jobs bounds concurrent rule executions per file (0 = GOMAXPROCS).
	Jobs int
}

// NewEngine creates an Engine for the given rules.
func NewEngine(rules []Rule, jobs int) *Engine {
	return &Engine{Rules: rules, Jobs: jobs}
}

// LintFile runs every rule on file, with files as the project for cross-file
// rules. Rules run concurrently; each rule's findings keep their order and
// the per-rule results are joined in rule order. The combined result is
// filtered by suppression comments and then aggregated.
func (e *Engine) LintFile(ctx context.Context, file *solast.File, files []*solast.File) (*FileResult, error) {
	result := &FileResult{File: file, RuleErrors: make(map[string]error)}
	if file == nil || file.Root == nil {
		return result, nil
	}

	perRule := make([][]Diagnostic, len(e.Rules))
	panics := make([]error, len(e.Rules))

	jobs := e.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, rule := range e.Rules {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return fmt.Errorf("linting cancelled: %w", err)
			}
			perRule[idx], panics[idx] = diagnose(rule, file, files)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, err
	}

	var diags []Diagnostic
	for idx, rule := range e.Rules {
		if panics[idx] != nil {
			result.RuleErrors[rule.ID()] = panics[idx]
			continue
		}
		diags = append(diags, perRule[idx]...)
	}

	diags, result.Suppressed = FileDirectives(file).Filter(diags)
	result.Diagnostics = Aggregate(diags)
	return result, nil
}

// diagnose runs one rule, turning a panic into an error so a faulty rule
// cannot take down the run.
func diagnose(rule Rule, file *solast.File, files []*solast.File) (diags []Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			err = fmt.Errorf("rule %s panicked on %s: %v", rule.ID(), file.Path, r)
		}
	}()
	return rule.Diagnose(file, files), nil
}
