package solast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/yaklabco/solidhunter/pkg/position"
)

const nodeTypeKey = "nodeType"

// Decode builds a node tree from one AST JSON object, normally a SourceUnit.
func Decode(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	return FromJSON(raw)
}

// FromJSON builds a node tree from an already decoded JSON value. Numbers are
// expected as json.Number, as produced by a decoder with UseNumber.
func FromJSON(raw any) (*Node, error) {
	obj, ok := raw.(map[string]any)
	if !ok || !isNode(obj) {
		return nil, fmt.Errorf("%w: root is not an AST node", ErrDeserialization)
	}
	return build(obj, nil)
}

func isNode(obj map[string]any) bool {
	_, ok := obj[nodeTypeKey].(string)
	return ok
}

func build(obj map[string]any, parent *Node) (*Node, error) {
	node := &Node{
		Type:   NodeType(obj[nodeTypeKey].(string)),
		Parent: parent,
		fields: map[string][]*Node{},
		attrs:  map[string]any{},
	}

	if id, ok := obj["id"].(json.Number); ok {
		node.ID, _ = id.Int64()
	}

	src, ok := obj["src"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s node %d has no src", ErrDeserialization, node.Type, node.ID)
	}
	span, err := position.ParseSpan(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s node %d: %w", ErrDeserialization, node.Type, node.ID, err)
	}
	node.Src = span

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch key {
		case nodeTypeKey, "id", "src":
			continue
		}
		if err := node.addValue(key, obj[key]); err != nil {
			return nil, err
		}
	}

	slices.SortStableFunc(node.Children, func(a, b *Node) int {
		if c := sortOffset(a) - sortOffset(b); c != 0 {
			return c
		}
		return a.Src.Length - b.Src.Length
	})
	return node, nil
}

// addValue stores one JSON member. Objects with a nodeType, and arrays of
// them, become child fields. Anything else is kept as an attribute, but node
// objects nested inside it (such as the identifiers in an import's
// symbolAliases) are still attached under a dotted key so the walk reaches them.
func (n *Node) addValue(key string, value any) error {
	switch v := value.(type) {
	case map[string]any:
		if isNode(v) {
			child, err := build(v, n)
			if err != nil {
				return err
			}
			n.fields[key] = []*Node{child}
			n.Children = append(n.Children, child)
			return nil
		}
		n.attrs[key] = v
		return n.addNested(key, v)

	case []any:
		if !isNodeList(v) {
			n.attrs[key] = v
			return n.addNested(key, v)
		}
		list := make([]*Node, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			child, err := build(obj, n)
			if err != nil {
				return err
			}
			list[i] = child
			n.Children = append(n.Children, child)
		}
		n.fields[key] = list
		return nil

	default:
		n.attrs[key] = v
		return nil
	}
}

func (n *Node) addNested(prefix string, value any) error {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			inner := v[key]
			if obj, ok := inner.(map[string]any); ok && isNode(obj) {
				child, err := build(obj, n)
				if err != nil {
					return err
				}
				path := prefix + "." + key
				n.fields[path] = append(n.fields[path], child)
				n.Children = append(n.Children, child)
				continue
			}
			if err := n.addNested(prefix+"."+key, inner); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range v {
			if err := n.addNested(prefix, item); err != nil {
				return err
			}
		}
	}
	return nil
}

// isNodeList reports whether a non-empty array holds node objects, allowing
// null placeholders. Empty arrays stay attributes.
func isNodeList(items []any) bool {
	found := false
	for _, item := range items {
		switch v := item.(type) {
		case nil:
		case map[string]any:
			if !isNode(v) {
				return false
			}
			found = true
		default:
			return false
		}
	}
	return found
}

// sortOffset places synthesized nodes (negative offsets) after real ones.
func sortOffset(n *Node) int {
	if n.Src.Offset < 0 {
		return math.MaxInt32
	}
	return n.Src.Offset
}
