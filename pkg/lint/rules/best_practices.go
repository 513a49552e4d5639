package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/position"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// Category names, in registry merge order.
const (
	CategoryBestPractices = "best-practices"
	CategoryNaming        = "naming"
	CategoryOrder         = "order"
	CategoryMiscellaneous = "miscellaneous"
	CategorySecurity      = "security"
)

// callStatement returns the call of an expression statement such as
// `require(ok);`.
func callStatement(stmt *solast.Node) (solast.CallView, bool) {
	if !stmt.Is(solast.ExpressionStatement) {
		return solast.CallView{}, false
	}
	expr := stmt.Field("expression")
	if !expr.Is(solast.FunctionCall) {
		return solast.CallView{}, false
	}
	return solast.CallView{Node: expr}, true
}

// statements returns every statement in the file.
func statements(file *solast.File) []*solast.Node {
	return solast.Collect(file.Root, solast.IsStatement)
}

// ---------------------------------------------------------------------------
// custom-errors

var customErrorsMeta = &meta{
	id:          "custom-errors",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	description: "Enforces the use of Custom Errors over Require and Revert statements",
	file:        "best_practices",
	good: []lint.Example{
		example("Use Custom Errors", "revert CustomErrorFunction();"),
		example("Use of Custom Errors with arguments", `revert CustomErrorFunction({ msg: "Insufficient Balance" });`),
	},
	bad: []lint.Example{
		example("Use of require statement", `require(userBalance >= availableAmount, "Insufficient Balance");`),
		example("Use of plain revert statement", "revert();"),
		example("Use of revert statement with message", `revert("Insufficient Balance");`),
	},
}

// CustomErrorsRule flags require, assert and string reverts.
type CustomErrorsRule struct {
	rule
}

// NewCustomErrorsRule creates the custom-errors rule.
func NewCustomErrorsRule(entry config.RuleEntry) lint.Rule {
	return &CustomErrorsRule{rule: newRule(customErrorsMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *CustomErrorsRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, stmt := range statements(file) {
		call, ok := callStatement(stmt)
		if !ok {
			continue
		}
		switch name := call.CalleeName(); name {
		case "require", "assert", "revert":
			diags = append(diags, r.Report(file, call.Node,
				fmt.Sprintf("Use Custom Errors instead of %s statements", name)))
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// explicit-types

const (
	typesExplicit = "explicit"
	typesImplicit = "implicit"
)

var (
	implicitTypes = []string{"uint", "int"}
	explicitTypes = []string{
		"uint256", "int256", "uint8", "int8", "uint16", "int16", "uint32", "int32",
		"uint64", "int64", "uint128", "int128",
	}
)

var explicitTypesMeta = &meta{
	id:          "explicit-types",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	data:        typesExplicit,
	description: "Forbid or enforce explicit types (like uint256) that have an alias (like uint).",
	file:        "best_practices",
	options: []lint.Option{
		{Description: "Options need to be one of \"explicit\", \"implicit\"", Default: typesExplicit},
	},
	good: []lint.Example{
		example("If explicit is selected", "uint256 public variableName"),
		example("If implicit is selected", "uint public variableName"),
	},
	bad: []lint.Example{
		example("If explicit is selected", "uint public variableName"),
		example("If implicit is selected", "uint256 public variableName"),
	},
}

// ExplicitTypesRule flags uint/int (explicit mode) or their sized spellings
// (implicit mode).
type ExplicitTypesRule struct {
	rule
	mode string
}

// NewExplicitTypesRule creates the explicit-types rule.
func NewExplicitTypesRule(entry config.RuleEntry) lint.Rule {
	return &ExplicitTypesRule{
		rule: newRule(explicitTypesMeta, entry),
		mode: stringOption(entry, typesExplicit, typesExplicit, typesImplicit),
	}
}

// Diagnose implements lint.Rule.
func (r *ExplicitTypesRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	forbidden := implicitTypes
	if r.mode == typesImplicit {
		forbidden = explicitTypes
	}

	var diags []lint.Diagnostic
	for _, typ := range solast.CollectTypes(file.Root, solast.ElementaryTypeName) {
		if !slices.Contains(forbidden, typ.Name()) {
			continue
		}
		varName := ""
		if decl := typ.Parent; decl.Is(solast.VariableDeclaration) && decl.Field("typeName") == typ {
			varName = decl.Name()
		}
		diags = append(diags, r.Report(file, typ,
			fmt.Sprintf("Rule is set with %s type [var/s: %s]", r.mode, varName)))
	}
	return diags
}

// ---------------------------------------------------------------------------
// function-max-lines

const defaultFunctionMaxLines = 50

var functionMaxLinesMeta = &meta{
	id:          "function-max-lines",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	data:        defaultFunctionMaxLines,
	description: "Function body contains \"count\" lines but allowed no more than maxlines.",
	file:        "best_practices",
	options: []lint.Option{
		{Description: "Maximum lines", Default: "50"},
	},
}

// FunctionMaxLinesRule limits the height of function bodies.
type FunctionMaxLinesRule struct {
	rule
	max int
}

// NewFunctionMaxLinesRule creates the function-max-lines rule.
func NewFunctionMaxLinesRule(entry config.RuleEntry) lint.Rule {
	return &FunctionMaxLinesRule{
		rule: newRule(functionMaxLinesMeta, entry),
		max:  intOption(entry, defaultFunctionMaxLines),
	}
}

// Diagnose implements lint.Rule. The height of a body is the distance
// between the lines of its braces.
func (r *FunctionMaxLinesRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, fn := range solast.RetrieveFunctions(file.Root) {
		body := fn.Body()
		if body == nil {
			continue
		}
		bodyRange := file.NodeRange(body)
		lines := bodyRange.End.Line - bodyRange.Start.Line
		if lines <= r.max {
			continue
		}
		rng := position.Range{Start: file.NameRange(fn.Node).Start, End: bodyRange.End}
		diags = append(diags, r.ReportAt(file, rng,
			fmt.Sprintf("Function body contains %d lines but allowed no more than %d lines", lines, r.max)))
	}
	return diags
}

// ---------------------------------------------------------------------------
// max-line-length

const defaultMaxLineLength = 120

var maxLineLengthMeta = &meta{
	id:          "max-line-length",
	category:    CategoryBestPractices,
	severity:    config.SeverityError,
	data:        defaultMaxLineLength,
	description: "Line length must be no more than maxlen.",
	file:        "best_practices",
	options: []lint.Option{
		{Description: "Maximum allowed line length in bytes", Default: "120"},
	},
}

// MaxLineLengthRule limits line length.
type MaxLineLengthRule struct {
	rule
	max int
}

// NewMaxLineLengthRule creates the max-line-length rule.
func NewMaxLineLengthRule(entry config.RuleEntry) lint.Rule {
	return &MaxLineLengthRule{
		rule: newRule(maxLineLengthMeta, entry),
		max:  intOption(entry, defaultMaxLineLength),
	}
}

// Diagnose implements lint.Rule.
func (r *MaxLineLengthRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for line := 1; line <= file.LineCount(); line++ {
		text := strings.TrimSuffix(file.Line(line), "\r")
		if len(text) <= r.max {
			continue
		}
		rng := position.Range{
			Start: position.Position{Line: line, Character: 1},
			End:   position.Position{Line: line, Character: len(text) + 1},
		}
		diags = append(diags, r.ReportAt(file, rng,
			fmt.Sprintf("Line length must be no more than %d but current length is %d", r.max, len(text))))
	}
	return diags
}

// ---------------------------------------------------------------------------
// max-states-count

const defaultMaxStatesCount = 15

var maxStatesCountMeta = &meta{
	id:          "max-states-count",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	data:        defaultMaxStatesCount,
	description: "Contract has \"some count\" states declarations but allowed no more than maxstates.",
	file:        "best_practices",
	options: []lint.Option{
		{Description: "Maximum number of state declarations per contract", Default: "15"},
	},
}

// MaxStatesCountRule limits state variables per contract. Constants do not
// occupy storage and are not counted.
type MaxStatesCountRule struct {
	rule
	max int
}

// NewMaxStatesCountRule creates the max-states-count rule.
func NewMaxStatesCountRule(entry config.RuleEntry) lint.Rule {
	return &MaxStatesCountRule{
		rule: newRule(maxStatesCountMeta, entry),
		max:  intOption(entry, defaultMaxStatesCount),
	}
}

// Diagnose implements lint.Rule. Every declaration past the limit is
// reported with the running count.
func (r *MaxStatesCountRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, contract := range solast.RetrieveContracts(file.Root) {
		count := 0
		for _, member := range contract.Members() {
			view := solast.VariableView{Node: member}
			if !member.Is(solast.VariableDeclaration) || view.Constant() {
				continue
			}
			count++
			if count > r.max {
				diags = append(diags, r.Report(file, member,
					fmt.Sprintf("Contract has %d states declarations but allowed no more than %d", count, r.max)))
			}
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// no-console

var consoleImports = []string{"hardhat/console.sol", "forge-std/console"}

var noConsoleMeta = &meta{
	id:          "no-console",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	description: "No console.log/logInt/logBytesX/logString/etc & No hardhat and forge-std console.sol import statements.",
	file:        "best_practices",
	bad: []lint.Example{
		example("No console.logX statements", `console.log("test");`),
		example("No hardhat/console.sol import statements", `import "hardhat/console.sol";`),
		example("No forge-std console.sol & console2.sol import statements", `import "forge-std/consoleN.sol";`),
	},
}

// NoConsoleRule flags console logging left in contracts.
type NoConsoleRule struct {
	rule
}

// NewNoConsoleRule creates the no-console rule.
func NewNoConsoleRule(entry config.RuleEntry) lint.Rule {
	return &NoConsoleRule{rule: newRule(noConsoleMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *NoConsoleRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	solast.Walk(file.Root, func(n *solast.Node) bool {
		switch {
		case n.Is(solast.ImportDirective):
			path := solast.ImportView{Node: n}.Path()
			if lo.SomeBy(consoleImports, func(name string) bool { return strings.Contains(path, name) }) {
				diags = append(diags, r.Report(file, n, "Unexpected import of console file"))
			}
		case n.Is(solast.FunctionCall):
			if member, ok := consoleCall(solast.CallView{Node: n}); ok {
				diags = append(diags, r.ReportAt(file, file.Range(member.MemberSpan()), "Unexpected console statement"))
			}
		}
		return true
	})
	return diags
}

// consoleCall matches console.log, console.logInt and friends.
func consoleCall(call solast.CallView) (solast.MemberView, bool) {
	callee := call.Callee()
	if !callee.Is(solast.MemberAccess) {
		return solast.MemberView{}, false
	}
	member := solast.MemberView{Node: callee}
	object := member.Expression()
	ok := object.Is(solast.Identifier) && object.Name() == "console" &&
		strings.HasPrefix(member.MemberName(), "log")
	return member, ok
}

// ---------------------------------------------------------------------------
// no-empty-block

var noEmptyBlockMeta = &meta{
	id:          "no-empty-block",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	description: "Code block has zero statements inside. Exceptions apply.",
	file:        "best_practices",
	good: []lint.Example{
		example("Empty fallback function", "fallback () external { }"),
		example("Empty constructor with member initialization list",
			"constructor(uint param) Foo(param) Bar(param*2) { }"),
	},
	bad: []lint.Example{
		example("Empty block on if statement", "if (condition) { }"),
		example("Empty contract", "contract Foo { }"),
		example("Empty block in constructor without parent initialization", "constructor () { }"),
	},
}

// NoEmptyBlockRule flags empty contracts and blocks.
type NoEmptyBlockRule struct {
	rule
}

// NewNoEmptyBlockRule creates the no-empty-block rule.
func NewNoEmptyBlockRule(entry config.RuleEntry) lint.Rule {
	return &NoEmptyBlockRule{rule: newRule(noEmptyBlockMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *NoEmptyBlockRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	solast.Walk(file.Root, func(n *solast.Node) bool {
		switch {
		case n.Is(solast.ContractDefinition):
			if len(solast.ContractView{Node: n}.Members()) == 0 {
				diags = append(diags, r.Report(file, n, "Code contains empty blocks"))
			}
		case n.Is(solast.Block, solast.UncheckedBlock):
			if len(solast.BlockView{Node: n}.Statements()) == 0 && !emptyBodyAllowed(n) {
				diags = append(diags, r.Report(file, n, "Code contains empty blocks"))
			}
		}
		return true
	})
	return diags
}

// emptyBodyAllowed reports bodies that are empty on purpose: fallback and
// receive functions, and constructors that only call base constructors.
func emptyBodyAllowed(block *solast.Node) bool {
	if !block.Parent.Is(solast.FunctionDefinition) {
		return false
	}
	fn := solast.FunctionView{Node: block.Parent}
	if fn.Body() != block {
		return false
	}
	switch fn.Kind() {
	case "fallback", "receive":
		return true
	case "constructor":
		return lo.SomeBy(fn.Modifiers(), func(m *solast.Node) bool {
			return m.String("kind") == "baseConstructorSpecifier"
		})
	}
	return false
}

// ---------------------------------------------------------------------------
// no-global-import

var noGlobalImportMeta = &meta{
	id:          "no-global-import",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	description: "Import statement includes an entire file instead of selected symbols.",
	file:        "best_practices",
	good: []lint.Example{
		example("import names explicitly", `import {A} from "./A.sol"`),
		example("import entire file into a name", `import "./A.sol" as A`),
		example("import entire file into a name", `import * as A from "./A.sol"`),
	},
	bad: []lint.Example{
		example("import all members from a file", `import * from "foo.sol";`),
		example("import an entire file", `import "foo.sol"`),
	},
}

// NoGlobalImportRule flags imports that pull every symbol into scope.
type NoGlobalImportRule struct {
	rule
}

// NewNoGlobalImportRule creates the no-global-import rule.
func NewNoGlobalImportRule(entry config.RuleEntry) lint.Rule {
	return &NoGlobalImportRule{rule: newRule(noGlobalImportMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *NoGlobalImportRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, imp := range solast.RetrieveImportDirectives(file.Root) {
		if imp.UnitAlias() != "" || len(imp.SymbolAliases()) > 0 {
			continue
		}
		diags = append(diags, r.Report(file, imp.Node,
			`Import should not be global. Specify names to import individually or bind all exports of the module into a name (import "path" as Name)`))
	}
	return diags
}

// ---------------------------------------------------------------------------
// one-contract-per-file

var oneContractPerFileMeta = &meta{
	id:          "one-contract-per-file",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	description: "A file should declare a single contract, interface or library.",
	file:        "best_practices",
}

// OneContractPerFileRule flags every contract after the first in a file.
type OneContractPerFileRule struct {
	rule
}

// NewOneContractPerFileRule creates the one-contract-per-file rule.
func NewOneContractPerFileRule(entry config.RuleEntry) lint.Rule {
	return &OneContractPerFileRule{rule: newRule(oneContractPerFileMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *OneContractPerFileRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	contracts := solast.RetrieveContracts(file.Root)
	if len(contracts) < 2 {
		return nil
	}
	diags := make([]lint.Diagnostic, 0, len(contracts)-1)
	for _, contract := range contracts[1:] {
		diags = append(diags, r.ReportName(file, contract.Node, "Found more than one contract per file"))
	}
	return diags
}

// ---------------------------------------------------------------------------
// payable-fallback

var payableFallbackMeta = &meta{
	id:          "payable-fallback",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	description: "When fallback is not payable you will not be able to receive ethers.",
	file:        "best_practices",
	good: []lint.Example{
		example("Payable fallback", "fallback() external payable {}"),
	},
	bad: []lint.Example{
		example("Fallback without payable", "fallback() external {}"),
	},
}

// PayableFallbackRule flags fallback functions that cannot receive ether.
type PayableFallbackRule struct {
	rule
}

// NewPayableFallbackRule creates the payable-fallback rule.
func NewPayableFallbackRule(entry config.RuleEntry) lint.Rule {
	return &PayableFallbackRule{rule: newRule(payableFallbackMeta, entry)}
}

// Diagnose implements lint.Rule. The finding covers the attributes after
// the parameter list.
func (r *PayableFallbackRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, fn := range solast.RetrieveFunctions(file.Root) {
		if fn.Kind() != "fallback" || fn.StateMutability() == "payable" {
			continue
		}
		rng := file.NodeRange(fn.Node)
		if words := file.HeaderWords(fn.Node); len(words) > 0 {
			rng = position.Range{
				Start: file.Range(words[0].Span).Start,
				End:   file.Range(words[len(words)-1].Span).End,
			}
		}
		diags = append(diags, r.ReportAt(file, rng,
			"When fallback is not payable you will not be able to receive ether"))
	}
	return diags
}

// ---------------------------------------------------------------------------
// reason-string

const defaultReasonStringLength = 32

var reasonStringMeta = &meta{
	id:          "reason-string",
	category:    CategoryBestPractices,
	severity:    config.SeverityWarning,
	data:        defaultReasonStringLength,
	description: "Require, assert and revert statements should carry a short reason string.",
	file:        "best_practices",
	options: []lint.Option{
		{Description: "Maximum reason length, as a number or {\"maxLength\": n}", Default: "32"},
	},
	good: []lint.Example{
		example("Require with reason string", `require(!has(role, account), "Roles: account already has role");`),
	},
	bad: []lint.Example{
		example("Require without reason string", "require(!has(role, account));"),
		example("Require with too long reason string",
			`require(!has(role, account), "Roles: account already has role, this reason string is too long");`),
	},
}

// ReasonStringRule checks the reason strings of require, assert and revert.
type ReasonStringRule struct {
	rule
	max int
}

// NewReasonStringRule creates the reason-string rule.
func NewReasonStringRule(entry config.RuleEntry) lint.Rule {
	return &ReasonStringRule{
		rule: newRule(reasonStringMeta, entry),
		max:  reasonMaxLength(entry),
	}
}

func reasonMaxLength(entry config.RuleEntry) int {
	if entry.Data == nil {
		return defaultReasonStringLength
	}
	var n int
	if entry.DecodeData(&n) && n > 0 {
		return n
	}
	var obj struct {
		MaxLength int `json:"maxLength"`
	}
	if entry.DecodeData(&obj) && obj.MaxLength > 0 {
		return obj.MaxLength
	}
	badData(entry)
	return defaultReasonStringLength
}

// Diagnose implements lint.Rule.
func (r *ReasonStringRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, stmt := range statements(file) {
		call, ok := callStatement(stmt)
		if !ok {
			continue
		}

		var reason *solast.Node
		switch call.CalleeName() {
		case "revert":
			if args := call.Arguments(); len(args) > 0 && isStringLiteral(args[0]) {
				reason = args[0]
			}
		case "require", "assert":
			if len(call.Names()) > 0 {
				continue
			}
			reason, _ = lo.Find(call.Arguments(), isStringLiteral)
		default:
			continue
		}

		if reason == nil {
			diags = append(diags, r.Report(file, call.Callee(), "Provide an error message for revert"))
			continue
		}
		if len(reason.String("value")) > r.max {
			diags = append(diags, r.Report(file, reason,
				fmt.Sprintf("Error message for revert is too long. Should be less than %d characters", r.max)))
		}
	}
	return diags
}

func isStringLiteral(n *solast.Node) bool {
	return n.Is(solast.Literal) && n.String("kind") == "string"
}
