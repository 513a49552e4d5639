package solast

// Visitor is called for each node in document order. Returning false skips
// the node's children.
type Visitor func(node *Node) bool

// Walk visits root and its descendants depth-first in document order. It
// uses an explicit stack, so deeply nested input cannot exhaust the
// goroutine stack.
func Walk(root *Node, visit Visitor) {
	if root == nil {
		return
	}

	stack := []*Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(node) {
			continue
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}

// WalkWithLeave is Walk with a callback after a node's subtree is done.
// leave is called for every node whose enter returned, including nodes whose
// children were skipped.
func WalkWithLeave(root *Node, enter Visitor, leave func(node *Node)) {
	if root == nil {
		return
	}

	type frame struct {
		node *Node
		next int
	}

	if !enter(root) {
		leave(root)
		return
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.node.Children) {
			leave(top.node)
			stack = stack[:len(stack)-1]
			continue
		}

		child := top.node.Children[top.next]
		top.next++
		if enter(child) {
			stack = append(stack, frame{node: child})
		} else {
			leave(child)
		}
	}
}

// Collect returns every node under root (root included) for which match is
// true, in document order. A match does not stop descent, so nested matches
// are collected too.
func Collect(root *Node, match func(*Node) bool) []*Node {
	var out []*Node
	Walk(root, func(node *Node) bool {
		if match(node) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// CollectTypes is Collect matching on node type.
func CollectTypes(root *Node, types ...NodeType) []*Node {
	return Collect(root, func(n *Node) bool { return n.Is(types...) })
}

// FindFirst returns the first node in document order for which match is true.
func FindFirst(root *Node, match func(*Node) bool) *Node {
	var found *Node
	Walk(root, func(node *Node) bool {
		if found != nil {
			return false
		}
		if match(node) {
			found = node
			return false
		}
		return true
	})
	return found
}
