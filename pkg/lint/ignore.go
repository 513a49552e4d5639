package lint

import (
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/solidhunter/pkg/solast"
)

// DirectiveKind is the kind of a suppression comment.
type DirectiveKind string

// Suppression comments recognized in source files. Each may be followed by
// whitespace-separated rule ids; without ids it applies to every rule.
const (
	DisableNextLine DirectiveKind = "solidhunter-disable-next-line"
	DisableLine     DirectiveKind = "solidhunter-disable-line"
	Disable         DirectiveKind = "solidhunter-disable"
	Enable          DirectiveKind = "solidhunter-enable"
)

var directivePattern = regexp.MustCompile(
	`(?://|/\*)\s*(solidhunter-disable-next-line|solidhunter-disable-line|solidhunter-disable|solidhunter-enable)\b([^\n]*)`)

// Directive is one suppression comment.
type Directive struct {
	Kind DirectiveKind
	Line int
	// RuleIDs is nil when the directive applies to all rules.
	RuleIDs []string
}

func (d Directive) appliesTo(ruleID string) bool {
	return len(d.RuleIDs) == 0 || slices.Contains(d.RuleIDs, ruleID)
}

// Directives holds the suppression comments of one file.
type Directives struct {
	list []Directive
}

// ParseDirectives scans file content for suppression comments.
func ParseDirectives(content string) *Directives {
	d := &Directives{}

	for lineIdx, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "solidhunter-") {
			continue
		}
		match := directivePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		var ids []string
		if fields := strings.Fields(strings.SplitN(match[2], "*/", 2)[0]); len(fields) > 0 {
			ids = fields
		}
		d.list = append(d.list, Directive{
			Kind:    DirectiveKind(match[1]),
			Line:    lineIdx + 1,
			RuleIDs: ids,
		})
	}
	return d
}

// List returns the directives in line order.
func (d *Directives) List() []Directive {
	return slices.Clone(d.list)
}

// Suppressed reports whether diagnostics of ruleID starting on line are
// silenced. Region directives take effect from their own line; an
// unterminated disable runs to the end of the file.
func (d *Directives) Suppressed(ruleID string, line int) bool {
	disabled := false

	for _, dir := range d.list {
		switch dir.Kind {
		case DisableLine:
			if dir.Line == line && dir.appliesTo(ruleID) {
				return true
			}
		case DisableNextLine:
			if dir.Line+1 == line && dir.appliesTo(ruleID) {
				return true
			}
		case Disable:
			if dir.Line <= line && dir.appliesTo(ruleID) {
				disabled = true
			}
		case Enable:
			if dir.Line <= line && dir.appliesTo(ruleID) {
				disabled = false
			}
		}
	}
	return disabled
}

// Filter drops diagnostics silenced by directives and returns the rest with
// the number dropped.
func (d *Directives) Filter(diags []Diagnostic) ([]Diagnostic, int) {
	if len(d.list) == 0 {
		return diags, 0
	}

	kept := make([]Diagnostic, 0, len(diags))
	for _, diag := range diags {
		if d.Suppressed(diag.RuleID, diag.Range.Start.Line) {
			continue
		}
		kept = append(kept, diag)
	}
	return kept, len(diags) - len(kept)
}

// FileDirectives parses the directives of file.
func FileDirectives(file *solast.File) *Directives {
	return ParseDirectives(file.Content)
}
