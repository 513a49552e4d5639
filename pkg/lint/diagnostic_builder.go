package lint

import (
	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/position"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic for the given rule and node.
func NewDiagnostic(ruleID string, file *solast.File, node *solast.Node, message string) *DiagnosticBuilder {
	var rng position.Range
	if node != nil && file != nil {
		rng = file.NodeRange(node)
	}
	return NewDiagnosticAt(ruleID, file, rng, message)
}

// NewDiagnosticAt starts building a diagnostic at a specific range.
func NewDiagnosticAt(ruleID string, file *solast.File, rng position.Range, message string) *DiagnosticBuilder {
	var uri string
	if file != nil {
		uri = file.Path
	}

	return &DiagnosticBuilder{
		diag: Diagnostic{
			Range:    rng,
			Severity: config.SeverityWarning,
			Message:  message,
			RuleID:   ruleID,
			URI:      uri,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithCode sets the diagnostic code.
func (b *DiagnosticBuilder) WithCode(c *Code) *DiagnosticBuilder {
	b.diag.Code = c
	return b
}

// WithSource sets the source label.
func (b *DiagnosticBuilder) WithSource(s string) *DiagnosticBuilder {
	b.diag.Source = s
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
