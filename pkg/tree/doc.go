// Package tree provides the weighted call tree that flamecharts are drawn from.
//
// # Overview
//
// A [Node] carries an exclusive weight (time or samples spent in the frame
// itself) and a derived inclusive weight (its own weight plus everything
// below it). Trees are constructed whole, either from a node/edge list via
// [Build] or synthesised with [Generate]; package io reads and writes the
// file formats. After construction the only field that ever changes is
// WeightIncl, which [Propagate] recomputes in place.
//
// # Construction
//
// [Build] validates the input graph as a single rooted tree: node ids must be
// unique, every edge endpoint must exist, every node has at most one parent,
// exactly one node has none, and every node is reachable from it. All
// violations found are reported together as structural errors:
//
//	root, err := tree.Build(nodes, edges)
//	if errors.Is(err, errors.ErrCodeInvalidGraph) {
//	    // malformed input: do not attempt to render
//	}
//
// # Traversal
//
// All traversals ([Propagate], [Walk]) use an explicit stack so that very
// deep trees cannot exhaust the goroutine stack.
package tree
