package solast

// Retrievers collect one node kind from a subtree in document order. Each
// accepts a file root or any subtree; RetrieveStatements expects a contract.

// RetrieveContracts returns contracts, interfaces and libraries.
func RetrieveContracts(root *Node) []ContractView {
	return wrap(CollectTypes(root, ContractDefinition), func(n *Node) ContractView { return ContractView{n} })
}

// RetrieveFunctions returns functions of every kind, including constructors,
// fallback and receive functions and free functions.
func RetrieveFunctions(root *Node) []FunctionView {
	return wrap(CollectTypes(root, FunctionDefinition), func(n *Node) FunctionView { return FunctionView{n} })
}

// RetrieveModifiers returns modifier definitions.
func RetrieveModifiers(root *Node) []ModifierView {
	return wrap(CollectTypes(root, ModifierDefinition), func(n *Node) ModifierView { return ModifierView{n} })
}

// RetrieveStructs returns struct definitions.
func RetrieveStructs(root *Node) []StructView {
	return wrap(CollectTypes(root, StructDefinition), func(n *Node) StructView { return StructView{n} })
}

// RetrieveEnums returns enum definitions.
func RetrieveEnums(root *Node) []EnumView {
	return wrap(CollectTypes(root, EnumDefinition), func(n *Node) EnumView { return EnumView{n} })
}

// RetrieveErrors returns custom error definitions.
func RetrieveErrors(root *Node) []ErrorView {
	return wrap(CollectTypes(root, ErrorDefinition), func(n *Node) ErrorView { return ErrorView{n} })
}

// RetrieveEvents returns event definitions.
func RetrieveEvents(root *Node) []EventView {
	return wrap(CollectTypes(root, EventDefinition), func(n *Node) EventView { return EventView{n} })
}

// RetrieveUsingDirectives returns using-for directives.
func RetrieveUsingDirectives(root *Node) []UsingView {
	return wrap(CollectTypes(root, UsingForDirective), func(n *Node) UsingView { return UsingView{n} })
}

// RetrieveImportDirectives returns import directives.
func RetrieveImportDirectives(root *Node) []ImportView {
	return wrap(CollectTypes(root, ImportDirective), func(n *Node) ImportView { return ImportView{n} })
}

// RetrieveUserDefinedTypes returns user-defined value type definitions.
func RetrieveUserDefinedTypes(root *Node) []UserDefinedTypeView {
	return wrap(CollectTypes(root, UserDefinedValueTypeDefinition),
		func(n *Node) UserDefinedTypeView { return UserDefinedTypeView{n} })
}

// RetrieveVariableDeclarations returns declarations that are not state
// variables: locals, parameters, return values and struct members.
func RetrieveVariableDeclarations(root *Node) []VariableView {
	matches := Collect(root, func(n *Node) bool {
		return n.Is(VariableDeclaration) && !isDefinition(n)
	})
	return wrap(matches, func(n *Node) VariableView { return VariableView{n} })
}

// RetrieveVariableDefinitions returns contract state variables and
// file-level constants.
func RetrieveVariableDefinitions(root *Node) []VariableView {
	matches := Collect(root, func(n *Node) bool {
		return n.Is(VariableDeclaration) && isDefinition(n)
	})
	return wrap(matches, func(n *Node) VariableView { return VariableView{n} })
}

// RetrieveCalls returns function calls, including event emits and reverts
// that solc records as calls.
func RetrieveCalls(root *Node) []CallView {
	return wrap(CollectTypes(root, FunctionCall), func(n *Node) CallView { return CallView{n} })
}

// RetrieveMemberAccesses returns member accesses such as msg.sender.
func RetrieveMemberAccesses(root *Node) []MemberView {
	return wrap(CollectTypes(root, MemberAccess), func(n *Node) MemberView { return MemberView{n} })
}

// RetrieveBlocks returns Block and UncheckedBlock nodes, including function bodies.
func RetrieveBlocks(root *Node) []BlockView {
	return wrap(CollectTypes(root, Block, UncheckedBlock), func(n *Node) BlockView { return BlockView{n} })
}

// RetrieveStatements returns every statement inside a contract. A function,
// modifier or catch-clause body is not itself a statement; a nested block or
// a branch body is.
func RetrieveStatements(contract ContractView) []*Node {
	return Collect(contract.Node, IsStatement)
}

// IsStatement reports whether n is a statement node.
func IsStatement(n *Node) bool {
	switch n.Type {
	case ExpressionStatement, VariableDeclarationStatement, IfStatement, ForStatement,
		WhileStatement, DoWhileStatement, Return, EmitStatement, RevertStatement,
		Break, Continue, PlaceholderStatement, InlineAssembly, TryStatement,
		UncheckedBlock, Throw:
		return true
	case Block:
		return !n.Parent.Is(FunctionDefinition, ModifierDefinition, TryCatchClause)
	default:
		return false
	}
}

func isDefinition(n *Node) bool {
	return n.Bool("stateVariable") || n.Parent.Is(SourceUnit)
}

func wrap[T any](nodes []*Node, view func(*Node) T) []T {
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, view(n))
	}
	return out
}
