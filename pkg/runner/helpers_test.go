package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/position"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

var errFakeParse = errors.New("fake parse failure")

const (
	validSource  = "pragma solidity ^0.8.0;\n\ncontract A {}\n"
	brokenSource = "pragma solidity ^0.8.0;\n\ncontract A { syntax error\n"
	gerberSource = "G04 Layer: BottomSolderMaskLayer*\n%FSLAX45Y45*%\n%MOMM*%\nM02*\n"
)

// fakeParser wraps content in an empty SourceUnit and fails on sources
// containing "syntax error". It counts parses per path.
type fakeParser struct {
	mu    sync.Mutex
	calls map[string]int
}

func newFakeParser() *fakeParser {
	return &fakeParser{calls: make(map[string]int)}
}

func (p *fakeParser) Parse(_ context.Context, path string, content []byte) (*solast.File, error) {
	p.mu.Lock()
	p.calls[filepath.Base(path)]++
	p.mu.Unlock()

	if strings.Contains(string(content), "syntax error") {
		return nil, errFakeParse
	}
	root, err := solast.Decode([]byte(`{"nodeType":"SourceUnit","id":1,"src":"0:0:0","nodes":[]}`))
	if err != nil {
		return nil, err
	}
	return solast.NewFile(path, string(content), root), nil
}

func (p *fakeParser) Calls(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[name]
}

var _ lint.Rule = (*siblingRule)(nil)

// siblingRule reports the size of the project set on line 1 of every file.
type siblingRule struct {
	lint.BaseRule
}

func (r *siblingRule) Documentation() lint.Documentation {
	return lint.Documentation{
		ID:          r.ID(),
		Severity:    r.Severity(),
		Category:    "test",
		Description: "One finding per file in the project set.",
	}
}

func (r *siblingRule) Diagnose(file *solast.File, files []*solast.File) []lint.Diagnostic {
	rng := position.Range{
		Start: position.Position{Line: 1, Character: 1},
		End:   position.Position{Line: 1, Character: 2},
	}
	diag := r.ReportAt(file, rng, "project")
	diags := make([]lint.Diagnostic, 0, len(files))
	for range files {
		diags = append(diags, diag)
	}
	return diags
}

func newLinter(parser lint.Parser, severity config.Severity) *lint.Linter {
	rule := &siblingRule{BaseRule: lint.NewBaseRule(config.RuleEntry{ID: "siblings", Severity: severity})}
	return lint.NewLinter(parser, lint.NewEngine([]lint.Rule{rule}, 2))
}

// writeTree creates files under root from a path → content map.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

// rel maps absolute paths under root back to slash-separated names.
func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, path := range paths {
		r, err := filepath.Rel(root, path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}
