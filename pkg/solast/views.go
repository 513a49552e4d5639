package solast

import "github.com/yaklabco/solidhunter/pkg/position"

// Contract kinds as reported in ContractDefinition.contractKind.
const (
	ContractKindContract  = "contract"
	ContractKindInterface = "interface"
	ContractKindLibrary   = "library"
)

// Function kinds as reported in FunctionDefinition.kind.
const (
	FunctionKindFunction    = "function"
	FunctionKindConstructor = "constructor"
	FunctionKindFallback    = "fallback"
	FunctionKindReceive     = "receive"
	FunctionKindFree        = "freeFunction"
)

// ContractView wraps a ContractDefinition node.
type ContractView struct{ *Node }

// Kind returns contract, interface or library.
func (c ContractView) Kind() string { return c.String("contractKind") }

// Abstract reports whether the contract is declared abstract.
func (c ContractView) Abstract() bool { return c.Bool("abstract") }

// Members returns the contract body items in declaration order.
func (c ContractView) Members() []*Node { return nonNil(c.List("nodes")) }

// BaseNames returns the names of inherited contracts.
func (c ContractView) BaseNames() []string {
	var names []string
	for _, spec := range nonNil(c.List("baseContracts")) {
		if base := spec.Field("baseName"); base != nil {
			names = append(names, base.Name())
		}
	}
	return names
}

// FunctionView wraps a FunctionDefinition node.
type FunctionView struct{ *Node }

// Kind returns the function kind (function, constructor, fallback, receive, freeFunction).
func (f FunctionView) Kind() string { return f.String("kind") }

// Body returns the function body, or nil when unimplemented.
func (f FunctionView) Body() *Node { return f.Field("body") }

// Visibility returns the visibility recorded by the compiler. The compiler
// fills in a default when the source omits one; see File.ExplicitVisibility.
func (f FunctionView) Visibility() string { return f.String("visibility") }

// StateMutability returns pure, view, payable or nonpayable.
func (f FunctionView) StateMutability() string { return f.String("stateMutability") }

// Virtual reports whether the function is declared virtual.
func (f FunctionView) Virtual() bool { return f.Bool("virtual") }

// Parameters returns the declared parameters.
func (f FunctionView) Parameters() []VariableView {
	return variables(f.Field("parameters"))
}

// ReturnParameters returns the declared return values.
func (f FunctionView) ReturnParameters() []VariableView {
	return variables(f.Field("returnParameters"))
}

// Modifiers returns the modifier invocations in source order.
func (f FunctionView) Modifiers() []*Node { return nonNil(f.List("modifiers")) }

// ModifierView wraps a ModifierDefinition node.
type ModifierView struct{ *Node }

// Body returns the modifier body, or nil.
func (m ModifierView) Body() *Node { return m.Field("body") }

// Parameters returns the declared parameters.
func (m ModifierView) Parameters() []VariableView {
	return variables(m.Field("parameters"))
}

// StructView wraps a StructDefinition node.
type StructView struct{ *Node }

// Members returns the struct fields.
func (s StructView) Members() []VariableView {
	var out []VariableView
	for _, member := range nonNil(s.List("members")) {
		out = append(out, VariableView{member})
	}
	return out
}

// EnumView wraps an EnumDefinition node.
type EnumView struct{ *Node }

// Values returns the enum value names.
func (e EnumView) Values() []string {
	var out []string
	for _, v := range nonNil(e.List("members")) {
		out = append(out, v.Name())
	}
	return out
}

// ErrorView wraps an ErrorDefinition node.
type ErrorView struct{ *Node }

// Parameters returns the error parameters.
func (e ErrorView) Parameters() []VariableView { return variables(e.Field("parameters")) }

// EventView wraps an EventDefinition node.
type EventView struct{ *Node }

// Parameters returns the event parameters.
func (e EventView) Parameters() []VariableView { return variables(e.Field("parameters")) }

// Anonymous reports whether the event is declared anonymous.
func (e EventView) Anonymous() bool { return e.Bool("anonymous") }

// UsingView wraps a UsingForDirective node.
type UsingView struct{ *Node }

// LibraryName returns the attached library, or "" for function lists.
func (u UsingView) LibraryName() string { return u.Field("libraryName").Name() }

// Global reports whether the directive is declared global.
func (u UsingView) Global() bool { return u.Bool("global") }

// ImportView wraps an ImportDirective node.
type ImportView struct{ *Node }

// ImportAlias is one `{Foreign as Local}` entry of an import.
type ImportAlias struct {
	Foreign string
	Local   string
}

// Path returns the import path as written.
func (i ImportView) Path() string { return i.String("file") }

// UnitAlias returns the alias of `import "x" as A` or `import * as A`.
func (i ImportView) UnitAlias() string { return i.String("unitAlias") }

// SymbolAliases returns the symbols named in a `{...}` import.
func (i ImportView) SymbolAliases() []ImportAlias {
	v, _ := i.Attr("symbolAliases")
	items, _ := v.([]any)

	out := make([]ImportAlias, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		alias := ImportAlias{}
		if foreign, ok := obj["foreign"].(map[string]any); ok {
			alias.Foreign, _ = foreign["name"].(string)
		}
		alias.Local, _ = obj["local"].(string)
		out = append(out, alias)
	}
	return out
}

// UserDefinedTypeView wraps a UserDefinedValueTypeDefinition node.
type UserDefinedTypeView struct{ *Node }

// Underlying returns the underlying elementary type name.
func (u UserDefinedTypeView) Underlying() string { return u.Field("underlyingType").Name() }

// VariableView wraps a VariableDeclaration node.
type VariableView struct{ *Node }

// TypeName returns the declared type node, or nil for `var`-style tuples.
func (v VariableView) TypeName() *Node { return v.Field("typeName") }

// Value returns the initializer of a state variable or constant, or nil.
func (v VariableView) Value() *Node { return v.Field("value") }

// StateVariable reports whether the declaration is a contract state variable.
func (v VariableView) StateVariable() bool { return v.Bool("stateVariable") }

// Constant reports whether the variable is constant.
func (v VariableView) Constant() bool {
	return v.Bool("constant") || v.Mutability() == "constant"
}

// Immutable reports whether the variable is immutable.
func (v VariableView) Immutable() bool { return v.Mutability() == "immutable" }

// Mutability returns mutable, immutable or constant.
func (v VariableView) Mutability() string { return v.String("mutability") }

// Visibility returns the recorded visibility.
func (v VariableView) Visibility() string { return v.String("visibility") }

// StorageLocation returns default, memory, storage or calldata.
func (v VariableView) StorageLocation() string { return v.String("storageLocation") }

// Indexed reports whether an event parameter is indexed.
func (v VariableView) Indexed() bool { return v.Bool("indexed") }

// FileLevel reports whether the declaration sits directly in a source unit.
func (v VariableView) FileLevel() bool { return v.Parent.Is(SourceUnit) }

// CallView wraps a FunctionCall node.
type CallView struct{ *Node }

// Callee returns the called expression.
func (c CallView) Callee() *Node { return c.Field("expression") }

// Arguments returns the call arguments.
func (c CallView) Arguments() []*Node { return nonNil(c.List("arguments")) }

// Names returns argument names of a `f({a: 1})` call.
func (c CallView) Names() []string { return c.Strings("names") }

// Kind returns functionCall, typeConversion or structConstructorCall.
func (c CallView) Kind() string { return c.String("kind") }

// CalleeName returns the name of a plain identifier callee, or "".
func (c CallView) CalleeName() string {
	if callee := c.Callee(); callee.Is(Identifier) {
		return callee.Name()
	}
	return ""
}

// MemberView wraps a MemberAccess node.
type MemberView struct{ *Node }

// Expression returns the accessed object.
func (m MemberView) Expression() *Node { return m.Field("expression") }

// MemberName returns the name after the dot.
func (m MemberView) MemberName() string { return m.String("memberName") }

// MemberSpan locates the member name, falling back to the whole expression.
func (m MemberView) MemberSpan() position.Span {
	if loc := m.String("memberLocation"); loc != "" {
		if span, err := position.ParseSpan(loc); err == nil && span.Valid() {
			return span
		}
	}
	return m.Src
}

// BlockView wraps a Block or UncheckedBlock node.
type BlockView struct{ *Node }

// Statements returns the block's statements.
func (b BlockView) Statements() []*Node { return nonNil(b.List("statements")) }

// Unchecked reports whether this is an `unchecked { }` block.
func (b BlockView) Unchecked() bool { return b.Is(UncheckedBlock) }

func variables(list *Node) []VariableView {
	var out []VariableView
	for _, param := range nonNil(list.List("parameters")) {
		out = append(out, VariableView{param})
	}
	return out
}

func nonNil(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
