// Package solast models the Solidity compiler's compact JSON AST and provides
// document-order traversal and node retrieval over it.
//
// Nodes are decoded generically: any JSON object carrying a nodeType becomes a
// Node, wherever it appears, so every variant the compiler emits is walkable
// without a per-kind table. Typed views such as FunctionDefinition wrap a Node
// to give names to the fields rules care about.
package solast

import (
	"encoding/json"
	"slices"

	"github.com/yaklabco/solidhunter/pkg/position"
)

// NodeType is the compiler's nodeType discriminator.
type NodeType string

// Node types referenced by this package and the built-in rules. Nodes of
// other types decode and walk the same way.
const (
	SourceUnit                     NodeType = "SourceUnit"
	PragmaDirective                NodeType = "PragmaDirective"
	ImportDirective                NodeType = "ImportDirective"
	ContractDefinition             NodeType = "ContractDefinition"
	InheritanceSpecifier           NodeType = "InheritanceSpecifier"
	UsingForDirective              NodeType = "UsingForDirective"
	StructDefinition               NodeType = "StructDefinition"
	EnumDefinition                 NodeType = "EnumDefinition"
	EnumValue                      NodeType = "EnumValue"
	UserDefinedValueTypeDefinition NodeType = "UserDefinedValueTypeDefinition"
	ErrorDefinition                NodeType = "ErrorDefinition"
	EventDefinition                NodeType = "EventDefinition"
	FunctionDefinition             NodeType = "FunctionDefinition"
	ModifierDefinition             NodeType = "ModifierDefinition"
	ModifierInvocation             NodeType = "ModifierInvocation"
	ParameterList                  NodeType = "ParameterList"
	VariableDeclaration            NodeType = "VariableDeclaration"
	OverrideSpecifier              NodeType = "OverrideSpecifier"
	IdentifierPath                 NodeType = "IdentifierPath"

	ElementaryTypeName  NodeType = "ElementaryTypeName"
	UserDefinedTypeName NodeType = "UserDefinedTypeName"
	FunctionTypeName    NodeType = "FunctionTypeName"
	Mapping             NodeType = "Mapping"
	ArrayTypeName       NodeType = "ArrayTypeName"

	Block                        NodeType = "Block"
	UncheckedBlock               NodeType = "UncheckedBlock"
	PlaceholderStatement         NodeType = "PlaceholderStatement"
	IfStatement                  NodeType = "IfStatement"
	TryStatement                 NodeType = "TryStatement"
	TryCatchClause               NodeType = "TryCatchClause"
	WhileStatement               NodeType = "WhileStatement"
	DoWhileStatement             NodeType = "DoWhileStatement"
	ForStatement                 NodeType = "ForStatement"
	Continue                     NodeType = "Continue"
	Break                        NodeType = "Break"
	Return                       NodeType = "Return"
	Throw                        NodeType = "Throw"
	EmitStatement                NodeType = "EmitStatement"
	RevertStatement              NodeType = "RevertStatement"
	VariableDeclarationStatement NodeType = "VariableDeclarationStatement"
	ExpressionStatement          NodeType = "ExpressionStatement"
	InlineAssembly               NodeType = "InlineAssembly"

	Conditional                  NodeType = "Conditional"
	Assignment                   NodeType = "Assignment"
	TupleExpression              NodeType = "TupleExpression"
	UnaryOperation               NodeType = "UnaryOperation"
	BinaryOperation              NodeType = "BinaryOperation"
	FunctionCall                 NodeType = "FunctionCall"
	FunctionCallOptions          NodeType = "FunctionCallOptions"
	NewExpression                NodeType = "NewExpression"
	MemberAccess                 NodeType = "MemberAccess"
	IndexAccess                  NodeType = "IndexAccess"
	IndexRangeAccess             NodeType = "IndexRangeAccess"
	Identifier                   NodeType = "Identifier"
	ElementaryTypeNameExpression NodeType = "ElementaryTypeNameExpression"
	Literal                      NodeType = "Literal"

	StructuredDocumentation NodeType = "StructuredDocumentation"
	YulBlock                NodeType = "YulBlock"
)

// Node is one AST node. Children holds every direct child node ordered by
// source offset. Named fields and scalar attributes keep the JSON keys the
// compiler used.
type Node struct {
	ID       int64
	Type     NodeType
	Src      position.Span
	Parent   *Node
	Children []*Node

	fields map[string][]*Node
	attrs  map[string]any
}

// Is reports whether the node has one of the given types. A nil node matches
// nothing.
func (n *Node) Is(types ...NodeType) bool {
	if n == nil {
		return false
	}
	return slices.Contains(types, n.Type)
}

// Field returns the child stored under key, or nil. For list fields it
// returns the first non-nil element.
func (n *Node) Field(key string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.fields[key] {
		if child != nil {
			return child
		}
	}
	return nil
}

// List returns the nodes stored under key. Lists keep the compiler's nil
// placeholders (for example skipped tuple components).
func (n *Node) List(key string) []*Node {
	if n == nil {
		return nil
	}
	return n.fields[key]
}

// Attr returns a non-node value stored under key.
func (n *Node) Attr(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.attrs[key]
	return v, ok
}

// String returns a string attribute, or "".
func (n *Node) String(key string) string {
	v, _ := n.Attr(key)
	s, _ := v.(string)
	return s
}

// Bool returns a boolean attribute, or false.
func (n *Node) Bool(key string) bool {
	v, _ := n.Attr(key)
	b, _ := v.(bool)
	return b
}

// Int returns an integer attribute.
func (n *Node) Int(key string) (int64, bool) {
	v, _ := n.Attr(key)
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := num.Int64()
	return i, err == nil
}

// Strings returns a list-of-strings attribute. Non-string elements are skipped.
func (n *Node) Strings(key string) []string {
	v, _ := n.Attr(key)
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Name returns the node's name attribute.
func (n *Node) Name() string {
	return n.String("name")
}

// NameSpan locates the node's name. It uses nameLocation when the compiler
// recorded one and falls back to the node's own span.
func (n *Node) NameSpan() position.Span {
	if n == nil {
		return position.Span{Offset: -1, Length: -1, File: position.NoFile}
	}
	if loc := n.String("nameLocation"); loc != "" {
		if span, err := position.ParseSpan(loc); err == nil && span.Valid() {
			return span
		}
	}
	return n.Src
}

// Ancestor returns the nearest ancestor with one of the given types.
func (n *Node) Ancestor(types ...NodeType) *Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Is(types...) {
			return p
		}
	}
	return nil
}
