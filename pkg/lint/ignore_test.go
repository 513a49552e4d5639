package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/solidhunter/pkg/lint"
)

func TestParseDirectives(t *testing.T) {
	t.Parallel()

	content := "pragma solidity ^0.8.0;\n" +
		"// solidhunter-disable-next-line no-console reason-string\n" +
		"uint x; // solidhunter-disable-line\n" +
		"/* solidhunter-disable func-visibility */\n" +
		"// solidhunter-enable\n" +
		"// solidhunter-disabled is not a directive\n"

	assert.Equal(t, []lint.Directive{
		{Kind: lint.DisableNextLine, Line: 2, RuleIDs: []string{"no-console", "reason-string"}},
		{Kind: lint.DisableLine, Line: 3, RuleIDs: nil},
		{Kind: lint.Disable, Line: 4, RuleIDs: []string{"func-visibility"}},
		{Kind: lint.Enable, Line: 5, RuleIDs: nil},
	}, lint.ParseDirectives(content).List())
}

func TestParseDirectives_NoIDsMeansAllRules(t *testing.T) {
	t.Parallel()

	for _, content := range []string{
		"// solidhunter-disable-line",
		"// solidhunter-disable-line   ",
		"/* solidhunter-disable */",
	} {
		list := lint.ParseDirectives(content).List()
		if assert.Len(t, list, 1, content) {
			assert.Nil(t, list[0].RuleIDs, content)
		}
		assert.True(t, lint.ParseDirectives(content).Suppressed("no-console", 1), content)
	}
}

func TestDirectives_Suppressed(t *testing.T) {
	t.Parallel()

	content := "// line 1\n" + // 1
		"// solidhunter-disable-next-line no-console\n" + // 2
		"console.log(1);\n" + // 3
		"console.log(2); // solidhunter-disable-line\n" + // 4
		"// solidhunter-disable ordering\n" + // 5
		"x;\n" + // 6
		"// solidhunter-enable ordering\n" + // 7
		"y;\n" + // 8
		"// solidhunter-disable\n" + // 9
		"z;\n" // 10

	d := lint.ParseDirectives(content)

	tests := []struct {
		name   string
		ruleID string
		line   int
		want   bool
	}{
		{"before any directive", "no-console", 1, false},
		{"next line matching rule", "no-console", 3, true},
		{"next line other rule", "ordering", 3, false},
		{"next line does not reach further", "no-console", 4, true},
		{"same line without ids", "anything", 4, true},
		{"region start line", "ordering", 5, true},
		{"inside region", "ordering", 6, true},
		{"inside region other rule", "no-console", 6, false},
		{"region closed", "ordering", 8, false},
		{"unterminated disable all", "no-console", 10, true},
		{"unterminated disable all other", "ordering", 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, d.Suppressed(tt.ruleID, tt.line))
		})
	}
}

func TestDirectives_Filter(t *testing.T) {
	t.Parallel()

	d := lint.ParseDirectives("a\n// solidhunter-disable-next-line r1\nb\n")
	diags := []lint.Diagnostic{
		diagAt("r1", 3, 1, 2, "dropped"),
		diagAt("r2", 3, 1, 2, "kept"),
		diagAt("r1", 1, 1, 2, "kept too"),
	}

	kept, dropped := d.Filter(diags)
	assert.Equal(t, 1, dropped)
	assert.Len(t, kept, 2)
	assert.Equal(t, "kept", kept[0].Message)

	kept, dropped = lint.ParseDirectives("").Filter(diags)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, diags, kept)
}
