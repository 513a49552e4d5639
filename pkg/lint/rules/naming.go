package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// namedFunctions returns functions that carry a user-chosen name, skipping
// constructors, fallback and receive.
func namedFunctions(root *solast.Node) []solast.FunctionView {
	var out []solast.FunctionView
	for _, fn := range solast.RetrieveFunctions(root) {
		if fn.Name() != "" && (fn.Kind() == "function" || fn.Kind() == "freeFunction") {
			out = append(out, fn)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// const-name-snakecase

var constNameSnakecaseMeta = &meta{
	id:          "const-name-snakecase",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	description: "Constant name must be in capitalized SNAKE_CASE. (Does not check IMMUTABLES)",
	file:        "naming",
	good: []lint.Example{
		example("Constant in SNAKE_CASE", "uint256 constant MAX_SUPPLY = 1000;"),
	},
	bad: []lint.Example{
		example("Constant in mixedCase", "uint256 constant maxSupply = 1000;"),
	},
}

// ConstNameSnakecaseRule checks constant names.
type ConstNameSnakecaseRule struct {
	rule
}

// NewConstNameSnakecaseRule creates the const-name-snakecase rule.
func NewConstNameSnakecaseRule(entry config.RuleEntry) lint.Rule {
	return &ConstNameSnakecaseRule{rule: newRule(constNameSnakecaseMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *ConstNameSnakecaseRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, v := range solast.RetrieveVariableDefinitions(file.Root) {
		if v.Constant() && !isSnakeCase(v.Name()) {
			diags = append(diags, r.ReportName(file, v.Node, "Constant name must be in capitalized SNAKE_CASE"))
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// contract-name-camelcase

var contractNameCamelcaseMeta = &meta{
	id:          "contract-name-camelcase",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	description: "Contract name must be in CamelCase.",
	file:        "naming",
}

// ContractNameCamelcaseRule checks contract, interface and library names.
type ContractNameCamelcaseRule struct {
	rule
}

// NewContractNameCamelcaseRule creates the contract-name-camelcase rule.
func NewContractNameCamelcaseRule(entry config.RuleEntry) lint.Rule {
	return &ContractNameCamelcaseRule{rule: newRule(contractNameCamelcaseMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *ContractNameCamelcaseRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, contract := range solast.RetrieveContracts(file.Root) {
		if !isCamelCase(contract.Name()) {
			diags = append(diags, r.ReportName(file, contract.Node, "Contract name must be in CamelCase"))
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// event-name-camelcase

var eventNameCamelcaseMeta = &meta{
	id:          "event-name-camelcase",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	description: "Event name must be in CamelCase.",
	file:        "naming",
}

// EventNameCamelcaseRule checks event names.
type EventNameCamelcaseRule struct {
	rule
}

// NewEventNameCamelcaseRule creates the event-name-camelcase rule.
func NewEventNameCamelcaseRule(entry config.RuleEntry) lint.Rule {
	return &EventNameCamelcaseRule{rule: newRule(eventNameCamelcaseMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *EventNameCamelcaseRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, event := range solast.RetrieveEvents(file.Root) {
		if !isCamelCase(event.Name()) {
			diags = append(diags, r.ReportName(file, event.Node, "Event name must be in CamelCase"))
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// foundry-test-functions

var foundryTestPattern = regexp.MustCompile(`^test(Fork)?(Fuzz)?(Fail)?(_)?(Revert(If_|When_){1})?\w{1,}$`)

var defaultFoundrySkip = []string{"setUp"}

var foundryTestFunctionsMeta = &meta{
	id:          "foundry-test-functions",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	data:        defaultFoundrySkip,
	description: "Enforce naming convention on functions for Foundry test cases",
	file:        "naming",
	options: []lint.Option{
		{Description: "Array of function to be skipped", Default: `["setUp"]`},
	},
	good: []lint.Example{
		example("Foundry test case with correct Function declaration", "function test_NumberIs42() public {}"),
		example("Foundry test case with correct Function declaration", "function testFail_Subtract43() public {}"),
		example("Foundry test case with correct Function declaration", "function testFuzz_FuzzyTest() public {}"),
	},
	bad: []lint.Example{
		example("Foundry test case with incorrect Function declaration", "function numberIs42() public {}"),
	},
}

// FoundryTestFunctionsRule checks public test functions in *.t.sol files.
type FoundryTestFunctionsRule struct {
	rule
	skip []string
}

// NewFoundryTestFunctionsRule creates the foundry-test-functions rule.
func NewFoundryTestFunctionsRule(entry config.RuleEntry) lint.Rule {
	return &FoundryTestFunctionsRule{
		rule: newRule(foundryTestFunctionsMeta, entry),
		skip: stringsOption(entry, defaultFoundrySkip),
	}
}

// Diagnose implements lint.Rule. Only functions written with a public or
// external keyword are test entry points.
func (r *FoundryTestFunctionsRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	if !strings.HasSuffix(file.Path, ".t.sol") {
		return nil
	}

	var diags []lint.Diagnostic
	for _, fn := range namedFunctions(file.Root) {
		switch file.ExplicitVisibility(fn.Node) {
		case solast.VisibilityPublic, solast.VisibilityExternal:
		default:
			continue
		}
		name := fn.Name()
		if foundryTestPattern.MatchString(name) || slices.Contains(r.skip, name) {
			continue
		}
		diags = append(diags, r.ReportName(file, fn.Node,
			fmt.Sprintf("Function %s() must match Foundry test naming convention", name)))
	}
	return diags
}

// ---------------------------------------------------------------------------
// func-name-mixedcase

var funcNameMixedcaseMeta = &meta{
	id:          "func-name-mixedcase",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	description: "Function name must be in mixedCase.",
	file:        "naming",
}

// FuncNameMixedcaseRule checks function names.
type FuncNameMixedcaseRule struct {
	rule
}

// NewFuncNameMixedcaseRule creates the func-name-mixedcase rule.
func NewFuncNameMixedcaseRule(entry config.RuleEntry) lint.Rule {
	return &FuncNameMixedcaseRule{rule: newRule(funcNameMixedcaseMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *FuncNameMixedcaseRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, fn := range namedFunctions(file.Root) {
		if !isMixedCase(fn.Name()) {
			diags = append(diags, r.ReportName(file, fn.Node, "Function name must be in mixedCase"))
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// func-param-name-mixedcase

var funcParamNameMixedcaseMeta = &meta{
	id:          "func-param-name-mixedcase",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	description: "Function param name must be in mixedCase.",
	file:        "naming",
}

// FuncParamNameMixedcaseRule checks function parameter names.
type FuncParamNameMixedcaseRule struct {
	rule
}

// NewFuncParamNameMixedcaseRule creates the func-param-name-mixedcase rule.
func NewFuncParamNameMixedcaseRule(entry config.RuleEntry) lint.Rule {
	return &FuncParamNameMixedcaseRule{rule: newRule(funcParamNameMixedcaseMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *FuncParamNameMixedcaseRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, fn := range solast.RetrieveFunctions(file.Root) {
		for _, param := range fn.Parameters() {
			if param.Name() != "" && !isMixedCase(param.Name()) {
				diags = append(diags, r.ReportName(file, param.Node, "Function param name must be in mixedCase"))
			}
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// modifier-name-mixedcase

var modifierNameMixedcaseMeta = &meta{
	id:          "modifier-name-mixedcase",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	description: "Modifier name must be in mixedCase.",
	file:        "naming",
}

// ModifierNameMixedcaseRule checks modifier names.
type ModifierNameMixedcaseRule struct {
	rule
}

// NewModifierNameMixedcaseRule creates the modifier-name-mixedcase rule.
func NewModifierNameMixedcaseRule(entry config.RuleEntry) lint.Rule {
	return &ModifierNameMixedcaseRule{rule: newRule(modifierNameMixedcaseMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *ModifierNameMixedcaseRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, mod := range solast.RetrieveModifiers(file.Root) {
		if !isMixedCase(mod.Name()) {
			diags = append(diags, r.ReportName(file, mod.Node, "Modifier name must be in mixedCase"))
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// named-parameters-mapping

var namedParametersMappingMeta = &meta{
	id:          "named-parameters-mapping",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	description: "Solidity v0.8.18 introduced named parameters on the mappings definition.",
	file:        "naming",
	good: []lint.Example{
		example(`To enter "users" mapping the key called "name" is needed to get the "balance"`,
			"mapping(string name => uint256 balance) public users;"),
		example(`To enter owner token balance, the main key "owner" enters another mapping which its key is "token" to get its "balance"`,
			"mapping(address owner => mapping(address token => uint256 balance)) public tokenBalances;"),
		example("Main key of mapping is enforced. On nested mappings other naming are not necessary",
			"mapping(address owner => mapping(address => uint256)) public tokenBalances;"),
	},
	bad: []lint.Example{
		example("No naming at all in regular mapping", "mapping(address => uint256) public tokenBalances;"),
		example("Missing any variable name in regular mapping uint256",
			"mapping(address token => uint256) public tokenBalances;"),
		example("No MAIN KEY naming in nested mapping. Other naming are not enforced",
			"mapping(address => mapping(address token => uint256 balance)) public tokenBalances;"),
	},
}

// NamedParametersMappingRule requires named mapping keys and values.
type NamedParametersMappingRule struct {
	rule
}

// NewNamedParametersMappingRule creates the named-parameters-mapping rule.
func NewNamedParametersMappingRule(entry config.RuleEntry) lint.Rule {
	return &NamedParametersMappingRule{rule: newRule(namedParametersMappingMeta, entry)}
}

// Diagnose implements lint.Rule. Only the outermost mapping of a type is
// checked; its value needs a name unless it is itself a mapping.
func (r *NamedParametersMappingRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, mapping := range solast.CollectTypes(file.Root, solast.Mapping) {
		if mapping.Parent.Is(solast.Mapping) {
			continue
		}
		key, value := mapping.Field("keyType"), mapping.Field("valueType")
		if mapping.String("keyName") == "" && key != nil {
			diags = append(diags, r.Report(file, key,
				fmt.Sprintf("%s parameter is not named", file.Text(key.Src))))
		}
		if mapping.String("valueName") == "" && value != nil && !value.Is(solast.Mapping) {
			diags = append(diags, r.Report(file, value,
				fmt.Sprintf("%s parameter is not named", file.Text(value.Src))))
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// private-vars-leading-underscore

const (
	msgPrivateVar      = "Private and internal variables must start with a single underscore"
	msgPrivateFunction = "Private and internal function names must start with a single underscore"
	msgPublicVar       = "Only private and internal variables must start with a single underscore"
)

var privateVarsLeadingUnderscoreMeta = &meta{
	id:          "private-vars-leading-underscore",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	data:        map[string]any{"strict": false},
	description: "Non-external functions and state variables should start with a single underscore. Others, shouldn't",
	file:        "naming",
	options: []lint.Option{
		{
			Description: `A JSON object with a single property "strict" specifying if the rule should apply to ALL non state variables. Default: { strict: false }.`,
			Default:     `{"strict":false}`,
		},
	},
	good: []lint.Example{
		example("Internal function with correct naming", "function _thisIsInternal() internal {}"),
		example("Private function with correct naming", "function _thisIsPrivate() private {}"),
		example("Internal state variable with correct naming", "uint256 internal _thisIsInternalVariable;"),
		example("Internal state variable with correct naming (no visibility is considered internal)",
			"uint256 _thisIsInternalVariable;"),
	},
	bad: []lint.Example{
		example("Internal function with incorrect naming", "function thisIsInternal() internal {}"),
		example("Private function with incorrect naming", "function thisIsPrivate() private {}"),
		example("Internal state variable with incorrect naming", "uint256 internal thisIsInternalVariable;"),
		example("Internal state variable with incorrect naming (no visibility is considered internal)",
			"uint256 thisIsInternalVariable;"),
	},
}

// PrivateVarsLeadingUnderscoreRule ties a leading underscore to
// private/internal visibility. In strict mode parameters and return values
// need one too.
type PrivateVarsLeadingUnderscoreRule struct {
	rule
	strict bool
}

// NewPrivateVarsLeadingUnderscoreRule creates the private-vars-leading-underscore rule.
func NewPrivateVarsLeadingUnderscoreRule(entry config.RuleEntry) lint.Rule {
	return &PrivateVarsLeadingUnderscoreRule{
		rule:   newRule(privateVarsLeadingUnderscoreMeta, entry),
		strict: boolField(entry, "strict", false),
	}
}

// Diagnose implements lint.Rule. A declaration without a visibility
// keyword counts as private.
func (r *PrivateVarsLeadingUnderscoreRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	check := func(n *solast.Node, private bool, missing, extra string) {
		underscore := strings.HasPrefix(n.Name(), "_")
		switch {
		case private && !underscore:
			diags = append(diags, r.ReportName(file, n, missing))
		case !private && underscore:
			diags = append(diags, r.ReportName(file, n, extra))
		}
	}

	solast.Walk(file.Root, func(n *solast.Node) bool {
		switch {
		case n.Is(solast.FunctionDefinition):
			fn := solast.FunctionView{Node: n}
			if r.strict {
				for _, v := range append(fn.Parameters(), fn.ReturnParameters()...) {
					if v.Name() != "" && !strings.HasPrefix(v.Name(), "_") {
						diags = append(diags, r.ReportName(file, v.Node, msgPrivateVar))
					}
				}
			}
			if fn.Name() != "" && fn.Kind() == "function" {
				check(n, r.private(file, n), msgPrivateFunction, msgPrivateFunction)
			}
		case n.Is(solast.VariableDeclaration):
			v := solast.VariableView{Node: n}
			if v.StateVariable() && !v.Constant() {
				check(n, r.private(file, n), msgPrivateVar, msgPublicVar)
			}
		}
		return true
	})
	return diags
}

func (r *PrivateVarsLeadingUnderscoreRule) private(file *solast.File, n *solast.Node) bool {
	switch file.ExplicitVisibility(n) {
	case "", solast.VisibilityPrivate, solast.VisibilityInternal:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// use-forbidden-name

var forbiddenNames = []string{"I", "l", "O"}

var useForbiddenNameMeta = &meta{
	id:          "use-forbidden-name",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	description: "Avoid to use letters 'I', 'l', 'O' as identifiers.",
	file:        "naming",
	bad: []lint.Example{
		example("Single letter that reads as a digit", "uint256 l = 1;"),
	},
}

// UseForbiddenNameRule flags variables named I, l or O.
type UseForbiddenNameRule struct {
	rule
}

// NewUseForbiddenNameRule creates the use-forbidden-name rule.
func NewUseForbiddenNameRule(entry config.RuleEntry) lint.Rule {
	return &UseForbiddenNameRule{rule: newRule(useForbiddenNameMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *UseForbiddenNameRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, v := range solast.CollectTypes(file.Root, solast.VariableDeclaration) {
		if slices.Contains(forbiddenNames, v.Name()) {
			diags = append(diags, r.ReportName(file, v, "Avoid to use letters 'I', 'l', 'O' as identifiers"))
		}
	}
	return diags
}

// ---------------------------------------------------------------------------
// var-name-mixedcase

var varNameMixedcaseMeta = &meta{
	id:          "var-name-mixedcase",
	category:    CategoryNaming,
	severity:    config.SeverityWarning,
	description: "Variable name must be in mixedCase. (Does not check IMMUTABLES or constants)",
	file:        "naming",
}

// VarNameMixedcaseRule flags variables with an underscore past the first
// character.
type VarNameMixedcaseRule struct {
	rule
}

// NewVarNameMixedcaseRule creates the var-name-mixedcase rule.
func NewVarNameMixedcaseRule(entry config.RuleEntry) lint.Rule {
	return &VarNameMixedcaseRule{rule: newRule(varNameMixedcaseMeta, entry)}
}

// Diagnose implements lint.Rule.
func (r *VarNameMixedcaseRule) Diagnose(file *solast.File, _ []*solast.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, n := range solast.CollectTypes(file.Root, solast.VariableDeclaration) {
		v := solast.VariableView{Node: n}
		if v.Constant() || v.Immutable() {
			continue
		}
		if hasInnerUnderscore(v.Name()) {
			diags = append(diags, r.ReportName(file, n, "Variable should be in mixedCase"))
		}
	}
	return diags
}
