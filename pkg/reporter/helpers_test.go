package reporter_test

import (
	"errors"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/position"
	"github.com/yaklabco/solidhunter/pkg/runner"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

const tokenSource = "pragma solidity ^0.8.0;\ncontract Token {\n    function f() public {}\n}\n"

func rng(line, start, end int) position.Range {
	return position.Range{
		Start: position.Position{Line: line, Character: start},
		End:   position.Position{Line: line, Character: end},
	}
}

// newResult builds a run over /p with one file carrying three findings,
// two of them folded on line 3, a clean file, a parse failure, and an
// ignored file.
func newResult() *runner.Result {
	token := solast.NewFile("/p/src/Token.sol", tokenSource, nil)
	diags := []lint.Diagnostic{
		{
			Range:    rng(2, 10, 15),
			Severity: config.SeverityError,
			Message:  "Contract name should be in CamelCase",
			RuleID:   "contract-name-camelcase",
			URI:      token.Path,
		},
		{
			Range:          rng(3, 25, 27),
			Severity:       config.SeverityWarning,
			Message:        "Code contains empty blocks",
			RuleID:         "no-empty-blocks",
			URI:            token.Path,
			SameLineRanges: []position.Range{rng(3, 5, 13)},
		},
	}

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/p/src/Broken.sol", Error: errors.New("parse /p/src/Broken.sol: ParserError: Expected ';'")},
			{Path: "/p/src/Clean.sol", Result: &lint.FileResult{File: solast.NewFile("/p/src/Clean.sol", "", nil)}},
			{Path: "/p/src/Token.sol", Result: &lint.FileResult{File: token, Diagnostics: diags, Suppressed: 1}},
			{Path: "/p/gen/Out.sol", Excluded: true, Result: &lint.FileResult{}},
			{Path: "/p/docs/board.sol", Skipped: true},
		},
		Stats: runner.Stats{
			FilesDiscovered:  5,
			FilesParsed:      2,
			FilesSkipped:     1,
			FilesExcluded:    1,
			ParseFailures:    1,
			FilesWithIssues:  1,
			DiagnosticsTotal: 3,
			DiagnosticsBySeverity: map[config.Severity]int{
				config.SeverityError:   1,
				config.SeverityWarning: 2,
			},
			Suppressed: 1,
		},
	}
}

func cleanResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/p/src/Clean.sol", Result: &lint.FileResult{}},
		},
		Stats: runner.Stats{
			FilesDiscovered:       1,
			FilesParsed:           1,
			DiagnosticsBySeverity: map[config.Severity]int{},
		},
	}
}
