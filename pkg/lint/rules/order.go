package rules

import (
	"slices"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// ---------------------------------------------------------------------------
// import-on-top

var importOnTopMeta = &meta{
	id:          "import-on-top",
	category:    CategoryOrder,
	severity:    config.SeverityWarning,
	description: "Import statements must be on top.",
	file:        "order",
}

// ImportOnTopRule flags imports that follow any declaration.
type ImportOnTopRule struct {
	rule
}

// NewImportOnTopRule creates the import-on-top rule.
func NewImportOnTopRule(entry config.RuleEntry) lint.Rule {
	return &ImportOnTopRule{rule: newRule(importOnTopMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *ImportOnTopRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	if file.Root == nil {
		return nil
	}

	var diags []lint.Diagnostic
	header := true
	for _, item := range file.Root.List("nodes") {
		switch {
		case item.Is(solast.PragmaDirective):
		case item.Is(solast.ImportDirective):
			if !header {
				diags = append(diags, r.Report(file, item, "Import statements must be on top"))
			}
		default:
			header = false
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// ordering

const unranked = -1

// File-level ranks.
const (
	rankPragma = iota
	rankImport
	rankFileEnum
	rankFileStruct
	rankInterface
	rankLibrary
	rankContract
)

// Contract-level ranks.
const (
	rankUserType = iota
	rankStruct
	rankEnum
	rankStateVariable
	rankEvent
	rankModifier
	rankConstructor
	rankReceive
	rankFallback
	rankExternal
	rankPublic
	rankInternal
	rankPrivate
)

var orderingMeta = &meta{
	id:          "ordering",
	category:    CategoryOrder,
	severity:    config.SeverityWarning,
	description: "Check order of elements in file and inside each contract, according to the style guide.",
	file:        "order",
	good: []lint.Example{
		example("Layout of a contract",
			"contract A {\n    struct S { uint256 a; }\n    uint256 private _x;\n    event E();\n    modifier m() { _; }\n    constructor() {}\n    function f() external {}\n    function g() internal {}\n}"),
	},
	bad: []lint.Example{
		example("State variable after a function", "contract A {\n    function f() external {}\n    uint256 private _x;\n}"),
	},
}

// OrderingRule checks the style-guide layout of files and contracts.
type OrderingRule struct {
	rule
}

// NewOrderingRule creates the ordering rule.
func NewOrderingRule(entry config.RuleEntry) lint.Rule {
	return &OrderingRule{rule: newRule(orderingMeta, entry)}
}

// Diagnose implements lint.Rule. An item ranked below the highest rank seen
// so far is reported and leaves that rank unchanged. Unranked items such as
// errors and using directives may appear anywhere.
func (r *OrderingRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	if file.Root == nil {
		return nil
	}

	var diags []lint.Diagnostic
	place := func(item *solast.Node, rank, current int) int {
		switch {
		case rank == unranked:
			return current
		case rank < current:
			diags = append(diags, r.Report(file, item, "Invalid ordering of items in the file"))
			return current
		}
		return rank
	}

	fileState := unranked
	for _, item := range file.Root.List("nodes") {
		fileState = place(item, fileRank(item), fileState)
		if !item.Is(solast.ContractDefinition) {
			continue
		}
		memberState := unranked
		for _, member := range (solast.ContractView{Node: item}).Members() {
			memberState = place(member, memberRank(member), memberState)
		}
	}
	return diags
}

func fileRank(n *solast.Node) int {
	switch n.Type {
	case solast.PragmaDirective:
		return rankPragma
	case solast.ImportDirective:
		return rankImport
	case solast.EnumDefinition:
		return rankFileEnum
	case solast.StructDefinition:
		return rankFileStruct
	case solast.ContractDefinition:
		switch (solast.ContractView{Node: n}).Kind() {
		case "interface":
			return rankInterface
		case "library":
			return rankLibrary
		}
		return rankContract
	}
	return unranked
}

func memberRank(n *solast.Node) int {
	switch n.Type {
	case solast.UserDefinedValueTypeDefinition:
		return rankUserType
	case solast.StructDefinition:
		return rankStruct
	case solast.EnumDefinition:
		return rankEnum
	case solast.VariableDeclaration:
		return rankStateVariable
	case solast.EventDefinition:
		return rankEvent
	case solast.ModifierDefinition:
		return rankModifier
	case solast.FunctionDefinition:
		fn := solast.FunctionView{Node: n}
		switch fn.Kind() {
		case "constructor":
			return rankConstructor
		case "receive":
			return rankReceive
		case "fallback":
			return rankFallback
		}
		switch fn.Visibility() {
		case solast.VisibilityExternal:
			return rankExternal
		case solast.VisibilityPublic:
			return rankPublic
		case solast.VisibilityInternal:
			return rankInternal
		case solast.VisibilityPrivate:
			return rankPrivate
		}
	}
	return unranked
}

// ---------------------------------------------------------------------------
// visibility-modifier-order

var mutabilityKeywords = []string{"pure", "view", "payable"}

var visibilityModifierOrderMeta = &meta{
	id:          "visibility-modifier-order",
	category:    CategoryOrder,
	severity:    config.SeverityWarning,
	description: "Visibility modifier must be first in list of modifiers.",
	file:        "order",
	good: []lint.Example{
		example("Visibility first", "function foo() public onlyOwner {}"),
	},
	bad: []lint.Example{
		example("Visibility after a modifier", "function foo() onlyOwner public {}"),
	},
}

// VisibilityModifierOrderRule flags a visibility keyword written after a
// modifier invocation or a mutability keyword.
type VisibilityModifierOrderRule struct {
	rule
}

// NewVisibilityModifierOrderRule creates the visibility-modifier-order rule.
func NewVisibilityModifierOrderRule(entry config.RuleEntry) lint.Rule {
	return &VisibilityModifierOrderRule{rule: newRule(visibilityModifierOrderMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *VisibilityModifierOrderRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, fn := range solast.RetrieveFunctions(file.Root) {
		first := -1
		for _, mod := range fn.Modifiers() {
			if mod.Src.Valid() && (first < 0 || mod.Src.Offset < first) {
				first = mod.Src.Offset
			}
		}

		for _, word := range file.HeaderWords(fn.Node) {
			switch {
			case isMutability(word.Text):
				if first < 0 || word.Span.Offset < first {
					first = word.Span.Offset
				}
			case solast.IsVisibility(word.Text):
				if first >= 0 && word.Span.Offset > first {
					diags = append(diags, r.ReportAt(file, file.Range(word.Span),
						"Visibility modifier must be first in list of modifiers"))
				}
			}
		}
	}
	return diags
}

func isMutability(word string) bool {
	return slices.Contains(mutabilityKeywords, word)
}
