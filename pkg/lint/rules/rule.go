package rules

import (
	"encoding/json"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
)

// meta is the static description of one built-in rule.
type meta struct {
	id          string
	category    string
	severity    config.Severity
	data        any
	description string
	file        string
	options     []lint.Option
	good        []lint.Example
	bad         []lint.Example
}

// spec turns the description into a registry spec.
func (m *meta) spec(build lint.Constructor) lint.Spec {
	return lint.Spec{
		ID:              m.id,
		Category:        m.category,
		DefaultSeverity: m.severity,
		DefaultData:     m.data,
		New:             build,
	}
}

// documentation describes the rule as configured by entry.
func (m *meta) documentation(entry config.RuleEntry) lint.Documentation {
	return lint.Documentation{
		ID:            m.id,
		Severity:      entry.Severity,
		Description:   m.description,
		Category:      m.category,
		ExampleConfig: m.exampleConfig(),
		SourceLink:    "pkg/lint/rules/" + m.file + ".go",
		TestLink:      "pkg/lint/rules/testdata/" + m.id,
		Options:       m.options,
		Examples:      lint.Examples{Good: m.good, Bad: m.bad},
	}
}

func (m *meta) exampleConfig() string {
	raw, err := json.Marshal(config.RuleEntry{ID: m.id, Severity: m.severity, Data: m.data})
	if err != nil {
		return ""
	}
	return string(raw)
}

// rule is embedded by every built-in rule.
type rule struct {
	lint.BaseRule
	meta *meta
}

func newRule(m *meta, entry config.RuleEntry) rule {
	if entry.Severity == "" {
		entry.Severity = m.severity
	}
	return rule{BaseRule: lint.NewBaseRule(entry), meta: m}
}

// Documentation describes the rule.
func (r *rule) Documentation() lint.Documentation {
	return r.meta.documentation(r.Entry())
}

func example(description, code string) lint.Example {
	return lint.Example{Description: description, Code: code}
}
