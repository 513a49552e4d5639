package lint

import (
	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/position"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// BaseRule carries the configuration entry a rule was created from.
// Embed it in rule implementations; it supplies ID and diagnostic helpers.
//
// Fields are unexported to avoid name collisions with interface methods.
type BaseRule struct {
	entry config.RuleEntry
}

// NewBaseRule creates a BaseRule for the given entry.
func NewBaseRule(entry config.RuleEntry) BaseRule {
	return BaseRule{entry: entry}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.entry.ID
}

// Severity returns the configured severity.
func (r *BaseRule) Severity() config.Severity {
	return r.entry.Severity
}

// Entry returns the configuration entry the rule was built from.
func (r *BaseRule) Entry() config.RuleEntry {
	return r.entry
}

// Report builds a diagnostic covering node.
func (r *BaseRule) Report(file *solast.File, node *solast.Node, message string) Diagnostic {
	return NewDiagnostic(r.entry.ID, file, node, message).
		WithSeverity(r.entry.Severity).
		Build()
}

// ReportName builds a diagnostic covering node's name.
func (r *BaseRule) ReportName(file *solast.File, node *solast.Node, message string) Diagnostic {
	return NewDiagnosticAt(r.entry.ID, file, file.NameRange(node), message).
		WithSeverity(r.entry.Severity).
		Build()
}

// ReportAt builds a diagnostic covering rng.
func (r *BaseRule) ReportAt(file *solast.File, rng position.Range, message string) Diagnostic {
	return NewDiagnosticAt(r.entry.ID, file, rng, message).
		WithSeverity(r.entry.Severity).
		Build()
}
