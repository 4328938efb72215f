package tree

// Propagate computes the inclusive weight of every node in the subtree
// rooted at root and returns the root's inclusive weight.
//
// Nodes are visited in post-order so each parent sums children whose
// WeightIncl is already final. The traversal keeps its own stack; tree depth
// is bounded only by memory. Propagate must be called again whenever a
// WeightExcl changes. A nil root yields 0.
func Propagate(root *Node) float64 {
	if root == nil {
		return 0
	}

	type frame struct {
		n    *Node
		next int // index of the next child to descend into
	}
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		top := len(stack) - 1
		f := &stack[top]
		if f.next < len(f.n.Children) {
			child := f.n.Children[f.next]
			f.next++
			stack = append(stack, frame{n: child})
			continue
		}

		sum := f.n.WeightExcl
		for _, c := range f.n.Children {
			sum += c.WeightIncl
		}
		f.n.WeightIncl = sum
		stack = stack[:top]
	}
	return root.WeightIncl
}

// TotalExclusive sums WeightExcl over the subtree. After [Propagate] it
// equals the root's WeightIncl.
func TotalExclusive(root *Node) float64 {
	var sum float64
	Walk(root, func(n *Node, _ int) bool {
		sum += n.WeightExcl
		return true
	})
	return sum
}
