package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies a node within one tree.
//
// Integer ids found in JSON input are normalised to their decimal string, so
// 7 and "7" name the same node.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("id must be a string or number: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

// String returns the id as a plain string.
func (id ID) String() string { return string(id) }

// Node is a vertex of the weighted call tree.
//
// A Node is owned by its parent; the root is owned by whoever built the
// tree. Only WeightIncl is mutated after construction (by [Propagate]).
type Node struct {
	ID         ID
	Label      string
	WeightExcl float64 // weight of the frame itself
	WeightIncl float64 // WeightExcl plus the inclusive weight of all children
	Children   []*Node
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return string(n.ID)
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits every node of the subtree rooted at root in pre-order
// (parent first, children in sibling order), passing each node's depth.
// Returning false from fn stops the walk.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	if root == nil {
		return
	}
	type entry struct {
		n     *Node
		depth int
	}
	stack := []entry{{root, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(e.n, e.depth) {
			return
		}
		for i := len(e.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, entry{e.n.Children[i], e.depth + 1})
		}
	}
}

// Count returns the number of nodes in the subtree rooted at root.
func Count(root *Node) int {
	var n int
	Walk(root, func(*Node, int) bool { n++; return true })
	return n
}

// Depth returns the number of levels in the subtree rooted at root
// (a single node has depth 1, nil has depth 0).
func Depth(root *Node) int {
	var d int
	Walk(root, func(_ *Node, depth int) bool {
		d = max(d, depth+1)
		return true
	})
	return d
}

// Find returns the first node with the given id in pre-order, or nil.
func Find(root *Node, id ID) *Node {
	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
