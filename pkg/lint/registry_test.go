package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// stubRule reports one fixed diagnostic per file and remembers its entry.
type stubRule struct {
	lint.BaseRule
	tag string
	run func(file *solast.File, files []*solast.File) []lint.Diagnostic
}

func (r *stubRule) Diagnose(file *solast.File, files []*solast.File) []lint.Diagnostic {
	if r.run != nil {
		return r.run(file, files)
	}
	return nil
}

func (r *stubRule) Documentation() lint.Documentation {
	return lint.Documentation{ID: r.ID(), Severity: r.Severity(), Description: r.tag}
}

func stubSpec(id, tag string) lint.Spec {
	return lint.Spec{
		ID:              id,
		DefaultSeverity: config.SeverityWarning,
		New: func(entry config.RuleEntry) lint.Rule {
			return &stubRule{BaseRule: lint.NewBaseRule(entry), tag: tag}
		},
	}
}

func TestRegistry_LastWriteWins(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry(
		lint.Category{Name: "naming", Specs: []lint.Spec{stubSpec("a", "naming"), stubSpec("shared", "naming")}},
		lint.Category{Name: "security", Specs: []lint.Spec{stubSpec("shared", "security"), stubSpec("b", "security")}},
	)

	assert.Equal(t, []string{"a", "b", "shared"}, reg.IDs())
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"naming", "security"}, reg.Categories())

	spec, ok := reg.Get("shared")
	require.True(t, ok)
	assert.Equal(t, "security", spec.Category)

	rule, err := reg.CreateRule(config.RuleEntry{ID: "shared", Severity: config.SeverityHint})
	require.NoError(t, err)
	assert.Equal(t, "security", rule.Documentation().Description)
	assert.Equal(t, config.SeverityHint, rule.Documentation().Severity)
}

func TestRegistry_CreateRule_UnknownID(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry(lint.Category{Name: "x", Specs: []lint.Spec{stubSpec("known", "")}})

	rule, err := reg.CreateRule(config.RuleEntry{ID: "missing", Severity: config.SeverityError})
	require.Error(t, err)
	assert.Nil(t, rule)
	require.ErrorIs(t, err, lint.ErrUnknownRuleID)

	var unknown *lint.UnknownRuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.ID)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestRegistry_CreateRules(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry(lint.Category{Name: "x", Specs: []lint.Spec{stubSpec("one", ""), stubSpec("two", "")}})

	rules, err := reg.CreateRules([]config.RuleEntry{
		{ID: "one", Severity: config.SeverityWarning},
		{ID: "nope", Severity: config.SeverityWarning},
		{ID: "two", Severity: config.SeverityWarning},
		{ID: "also-nope", Severity: config.SeverityWarning},
	})

	require.ErrorIs(t, err, lint.ErrUnknownRuleID)
	assert.Contains(t, err.Error(), "nope")
	assert.Contains(t, err.Error(), "also-nope")
	require.Len(t, rules, 2)
	assert.Equal(t, "one", rules[0].ID())
	assert.Equal(t, "two", rules[1].ID())

	rules, err = reg.CreateRules(nil)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestRegistry_DefaultEntries(t *testing.T) {
	t.Parallel()

	withData := stubSpec("b-rule", "")
	withData.DefaultSeverity = config.SeverityError
	withData.DefaultData = 120

	reg := lint.NewRegistry(lint.Category{Name: "x", Specs: []lint.Spec{withData, stubSpec("a-rule", "")}})

	assert.Equal(t, []config.RuleEntry{
		{ID: "a-rule", Severity: config.SeverityWarning},
		{ID: "b-rule", Severity: config.SeverityError, Data: 120},
	}, reg.DefaultEntries())

	rs := reg.DefaultRuleSet("solidhunter")
	assert.Equal(t, "solidhunter", rs.Name)
	assert.Len(t, rs.Rules, 2)

	docs := reg.Documentation()
	require.Len(t, docs, 2)
	assert.Equal(t, "a-rule", docs[0].ID)
	assert.Equal(t, "x", docs[0].Category)
	assert.Equal(t, config.SeverityError, docs[1].Severity)
}
