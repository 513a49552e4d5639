package lint_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// sourceFile wraps content in a bare SourceUnit so rules see a parsed file.
func sourceFile(t *testing.T, path, content string) *solast.File {
	t.Helper()

	root, err := solast.Decode([]byte(fmt.Sprintf(
		`{"nodeType":"SourceUnit","id":1,"src":"0:%d:0","nodes":[]}`, len(content))))
	require.NoError(t, err)
	return solast.NewFile(path, content, root)
}

func lineRule(id string, lines ...int) *stubRule {
	rule := &stubRule{BaseRule: lint.NewBaseRule(config.RuleEntry{ID: id, Severity: config.SeverityWarning})}
	rule.run = func(file *solast.File, _ []*solast.File) []lint.Diagnostic {
		diags := make([]lint.Diagnostic, 0, len(lines))
		for i, line := range lines {
			diag := diagAt(id, line, i+1, i+2, fmt.Sprintf("%s@%d", id, line))
			diag.URI = file.Path
			diags = append(diags, diag)
		}
		return diags
	}
	return rule
}

func TestEngine_RuleOrder(t *testing.T) {
	t.Parallel()

	file := sourceFile(t, "a.sol", "a\nb\nc\n")
	engine := lint.NewEngine([]lint.Rule{
		lineRule("second", 3, 1),
		lineRule("first", 2),
	}, 1)

	result, err := engine.LintFile(context.Background(), file, []*solast.File{file})
	require.NoError(t, err)

	messages := make([]string, 0, len(result.Diagnostics))
	for _, diag := range result.Diagnostics {
		messages = append(messages, diag.Message)
	}
	assert.Equal(t, []string{"second@3", "second@1", "first@2"}, messages)
	assert.True(t, result.HasIssues())
	assert.Equal(t, 3, result.IssueCount())
}

func TestEngine_AggregatesAndSuppresses(t *testing.T) {
	t.Parallel()

	content := "x\n// solidhunter-disable-next-line muted\ny\n"
	file := sourceFile(t, "a.sol", content)
	engine := lint.NewEngine([]lint.Rule{
		lineRule("dup", 1, 1, 1),
		lineRule("muted", 3, 1),
	}, 0)

	result, err := engine.LintFile(context.Background(), file, nil)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "dup", result.Diagnostics[0].RuleID)
	assert.Len(t, result.Diagnostics[0].SameLineRanges, 2)
	assert.Equal(t, "muted@1", result.Diagnostics[1].Message)
	assert.Equal(t, 1, result.Suppressed)
	assert.Equal(t, 4, result.IssueCount())
}

func TestEngine_PanickingRule(t *testing.T) {
	t.Parallel()

	file := sourceFile(t, "a.sol", "x\n")
	boom := &stubRule{BaseRule: lint.NewBaseRule(config.RuleEntry{ID: "boom", Severity: config.SeverityError})}
	boom.run = func(*solast.File, []*solast.File) []lint.Diagnostic {
		panic("bad node")
	}

	engine := lint.NewEngine([]lint.Rule{boom, lineRule("ok", 1)}, 2)
	result, err := engine.LintFile(context.Background(), file, nil)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "ok", result.Diagnostics[0].RuleID)
	require.Contains(t, result.RuleErrors, "boom")
	assert.Contains(t, result.RuleErrors["boom"].Error(), "bad node")
}

func TestEngine_Cancelled(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	counting := &stubRule{BaseRule: lint.NewBaseRule(config.RuleEntry{ID: "count"})}
	counting.run = func(*solast.File, []*solast.File) []lint.Diagnostic {
		calls.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := lint.NewEngine([]lint.Rule{counting, counting, counting}, 1)
	_, err := engine.LintFile(ctx, sourceFile(t, "a.sol", "x"), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestEngine_UnparsedFile(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine([]lint.Rule{lineRule("r", 1)}, 0)

	result, err := engine.LintFile(context.Background(), solast.NewFile("a.sol", "x", nil), nil)
	require.NoError(t, err)
	assert.False(t, result.HasIssues())

	result, err = engine.LintFile(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, result.IssueCount())
}

func TestEngine_CrossFileInput(t *testing.T) {
	t.Parallel()

	a := sourceFile(t, "a.sol", "a")
	b := sourceFile(t, "b.sol", "b")

	var seen []string
	rule := &stubRule{BaseRule: lint.NewBaseRule(config.RuleEntry{ID: "cross"})}
	rule.run = func(_ *solast.File, files []*solast.File) []lint.Diagnostic {
		for _, f := range files {
			seen = append(seen, f.Path)
		}
		return nil
	}

	_, err := lint.NewEngine([]lint.Rule{rule}, 1).LintFile(context.Background(), a, []*solast.File{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sol", "b.sol"}, seen)
}
