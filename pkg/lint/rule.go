// Package lint provides the rule engine, diagnostics, and registry for solidhunter.
package lint

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/position"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// Diagnostic represents a single lint issue found in a file. The JSON form is
// the diagnostic boundary consumed by reporters and editors.
type Diagnostic struct {
	// Range locates the issue; End is just past the last flagged character.
	Range position.Range `json:"range"`

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity `json:"severity"`

	// Code is an optional rule-specific code.
	Code *Code `json:"code,omitempty"`

	// Source optionally names the producer.
	Source string `json:"source,omitempty"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string `json:"id"`

	// URI identifies the file containing the issue.
	URI string `json:"uri"`

	// SameLineRanges holds the ranges of further diagnostics of the same rule
	// on the same line, folded into this one by Aggregate.
	SameLineRanges []position.Range `json:"same_line_ranges,omitempty"`
}

// Occurrences returns how many findings the diagnostic stands for.
func (d *Diagnostic) Occurrences() int {
	return 1 + len(d.SameLineRanges)
}

// Code is a diagnostic code that is either a number or a string.
type Code struct {
	Number int64
	Text   string
	// IsNumber selects Number over Text.
	IsNumber bool
}

// NumberCode returns a numeric code.
func NumberCode(n int64) *Code {
	return &Code{Number: n, IsNumber: true}
}

// StringCode returns a string code.
func StringCode(s string) *Code {
	return &Code{Text: s}
}

// String formats the code for display.
func (c Code) String() string {
	if c.IsNumber {
		return strconv.FormatInt(c.Number, 10)
	}
	return c.Text
}

// MarshalJSON encodes the code as a JSON number or string.
func (c Code) MarshalJSON() ([]byte, error) {
	if c.IsNumber {
		return json.Marshal(c.Number)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts a JSON number or string.
func (c *Code) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Code{Number: n, IsNumber: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("diagnostic code must be a number or string: %w", err)
	}
	*c = Code{Text: s}
	return nil
}

// Rule defines the interface that all lint rules must implement.
//
// Diagnose must be a pure function of its inputs: rules hold only the
// configuration they were built with and may be called concurrently.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "no-empty-block").
	ID() string

	// Diagnose checks file and returns its findings in document order. files
	// is the whole project, file included, for cross-file checks.
	Diagnose(file *solast.File, files []*solast.File) []Diagnostic

	// Documentation describes the rule.
	Documentation() Documentation
}
