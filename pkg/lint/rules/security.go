package rules

import (
	"strings"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/position"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// isMember reports whether n is the member access object.member.
func isMember(n *solast.Node, object, member string) bool {
	if !n.Is(solast.MemberAccess) {
		return false
	}
	view := solast.MemberView{Node: n}
	expr := view.Expression()
	return view.MemberName() == member && expr.Is(solast.Identifier) && expr.Name() == object
}

// ---------------------------------------------------------------------------
// avoid-tx-origin

var avoidTxOriginMeta = &meta{
	id:          "avoid-tx-origin",
	category:    CategorySecurity,
	severity:    config.SeverityWarning,
	description: "Avoid to use tx.origin.",
	file:        "security",
	bad: []lint.Example{
		example("Authorization through tx.origin", "require(tx.origin == owner);"),
	},
}

// AvoidTxOriginRule flags tx.origin.
type AvoidTxOriginRule struct {
	rule
}

// NewAvoidTxOriginRule creates the avoid-tx-origin rule.
func NewAvoidTxOriginRule(entry config.RuleEntry) lint.Rule {
	return &AvoidTxOriginRule{rule: newRule(avoidTxOriginMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *AvoidTxOriginRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, access := range solast.RetrieveMemberAccesses(file.Root) {
		if isMember(access.Node, "tx", "origin") {
			diags = append(diags, r.Report(file, access.Node, "Avoid to use tx.origin"))
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// func-visibility

var funcVisibilityMeta = &meta{
	id:          "func-visibility",
	category:    CategorySecurity,
	severity:    config.SeverityWarning,
	data:        map[string]any{"ignoreConstructors": true},
	description: "Explicitly mark visibility in function.",
	file:        "security",
	options: []lint.Option{
		{
			Description: `A JSON object with a single property "ignoreConstructors" specifying if the rule should ignore constructors. (Note: This is required to be true for Solidity >=0.7.0 and false for <0.7.0)`,
			Default:     `{"ignoreConstructors":true}`,
		},
	},
	good: []lint.Example{
		example("Functions explicitly marked with visibility",
			"function b() internal { }\nfunction b() external { }\nfunction b() private { }\nfunction b() public { }\nconstructor() public { }"),
	},
	bad: []lint.Example{
		example("Functions without explicitly marked visibility", "function b() { }"),
	},
}

// FuncVisibilityRule requires a visibility keyword on contract functions.
type FuncVisibilityRule struct {
	rule
	ignoreConstructors bool
}

// NewFuncVisibilityRule creates the func-visibility rule.
func NewFuncVisibilityRule(entry config.RuleEntry) lint.Rule {
	return &FuncVisibilityRule{
		rule:               newRule(funcVisibilityMeta, entry),
		ignoreConstructors: boolField(entry, "ignoreConstructors", true),
	}
}

// Diagnose implements lint.Rule. Plain functions are reported whole;
// constructors, fallback and receive functions on their keyword.
func (r *FuncVisibilityRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	const message = "Explicitly mark visibility in function (public, private, internal, external)"

	var diags []lint.Diagnostic
	for _, fn := range solast.RetrieveFunctions(file.Root) {
		kind := fn.Kind()
		if kind == "freeFunction" || (kind == "constructor" && r.ignoreConstructors) {
			continue
		}
		if file.ExplicitVisibility(fn.Node) != "" {
			continue
		}
		if kind == "function" {
			diags = append(diags, r.Report(file, fn.Node, message))
			continue
		}
		diags = append(diags, r.ReportAt(file, keywordRange(file, fn.Node, kind), message))
	}
	return diags
}

// keywordRange locates keyword at the start of n, or all of n when the
// source spells it differently.
func keywordRange(file *solast.File, n *solast.Node, keyword string) position.Range {
	if !strings.HasPrefix(file.Text(n.Src), keyword) {
		return file.NodeRange(n)
	}
	return file.Range(position.Span{Offset: n.Src.Offset, Length: len(keyword), File: n.Src.File})
}

// ---------------------------------------------------------------------------
// no-inline-assembly

var noInlineAssemblyMeta = &meta{
	id:          "no-inline-assembly",
	category:    CategorySecurity,
	severity:    config.SeverityWarning,
	description: "Avoid to use inline assembly. It is acceptable only in rare cases.",
	file:        "security",
}

// NoInlineAssemblyRule flags assembly blocks.
type NoInlineAssemblyRule struct {
	rule
}

// NewNoInlineAssemblyRule creates the no-inline-assembly rule.
func NewNoInlineAssemblyRule(entry config.RuleEntry) lint.Rule {
	return &NoInlineAssemblyRule{rule: newRule(noInlineAssemblyMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *NoInlineAssemblyRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, asm := range solast.CollectTypes(file.Root, solast.InlineAssembly) {
		diags = append(diags, r.Report(file, asm, "Avoid to use inline assembly. It is acceptable only in rare cases"))
	}
	return diags
}

// ---------------------------------------------------------------------------
// not-rely-on-time

var notRelyOnTimeMeta = &meta{
	id:          "not-rely-on-time",
	category:    CategorySecurity,
	severity:    config.SeverityWarning,
	description: "Avoid making time-based decisions in your business logic.",
	file:        "security",
	bad: []lint.Example{
		example("Deadline on block time", "require(block.timestamp > deadline);"),
	},
}

// NotRelyOnTimeRule flags block.timestamp and the legacy now.
type NotRelyOnTimeRule struct {
	rule
}

// NewNotRelyOnTimeRule creates the not-rely-on-time rule.
func NewNotRelyOnTimeRule(entry config.RuleEntry) lint.Rule {
	return &NotRelyOnTimeRule{rule: newRule(notRelyOnTimeMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *NotRelyOnTimeRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	solast.Walk(file.Root, func(n *solast.Node) bool {
		if (n.Is(solast.Identifier) && n.Name() == "now") || isMember(n, "block", "timestamp") {
			diags = append(diags, r.Report(file, n, "Avoid making time-based decisions in your business logic"))
			return false
		}
		return true
	})
	return diags
}

// ---------------------------------------------------------------------------
// state-visibility

var stateVisibilityMeta = &meta{
	id:          "state-visibility",
	category:    CategorySecurity,
	severity:    config.SeverityWarning,
	description: "Explicitly mark visibility of state.",
	file:        "security",
	good: []lint.Example{
		example("State explicitly marked with visibility", "uint public data;"),
	},
	bad: []lint.Example{
		example("State without explicitly marked visibility", "uint data;"),
	},
}

// StateVisibilityRule requires a visibility keyword on state variables.
type StateVisibilityRule struct {
	rule
}

// NewStateVisibilityRule creates the state-visibility rule.
func NewStateVisibilityRule(entry config.RuleEntry) lint.Rule {
	return &StateVisibilityRule{rule: newRule(stateVisibilityMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *StateVisibilityRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, v := range solast.RetrieveVariableDefinitions(file.Root) {
		if v.StateVariable() && file.ExplicitVisibility(v.Node) == "" {
			diags = append(diags, r.ReportName(file, v.Node, "Explicitly mark visibility of state"))
		}
	}
	return diags
}
