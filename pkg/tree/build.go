package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/matzehuels/flametower/pkg/errors"
)

// GraphNode is one entry of a node list handed to [Build].
type GraphNode struct {
	ID     ID      `json:"id"`
	Label  string  `json:"label,omitempty"`
	Weight float64 `json:"weight"`
}

// Edge is a directed parent → child link handed to [Build].
//
// In JSON an edge is either a two-element array [from, to] or an object
// {"from": .., "to": ..}. It is always written as an array.
type Edge struct {
	From ID
	To   ID
}

// UnmarshalJSON accepts both the pair and the object encoding.
func (e *Edge) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var pair []ID
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("edge must have exactly 2 endpoints, got %d", len(pair))
		}
		e.From, e.To = pair[0], pair[1]
		return nil
	}
	var obj struct {
		From ID `json:"from"`
		To   ID `json:"to"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	e.From, e.To = obj.From, obj.To
	return nil
}

// MarshalJSON writes the edge as a [from, to] pair.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]ID{e.From, e.To})
}

// Build converts a node list and a parent → child edge list into a tree and
// returns its root. Children keep the order in which their edges appear.
//
// Build returns structural errors (code INVALID_GRAPH) for:
//   - invalid or duplicate node ids, negative or non-finite weights
//   - edges with an empty endpoint or an endpoint that does not exist
//   - nodes with more than one parent, and self loops
//   - zero or more than one node without a parent
//   - nodes unreachable from the root (which can only sit on a cycle)
//
// All problems found in one pass are combined into the returned error; use
// multierr.Errors to list them. Inclusive weights are not computed; call
// [Propagate] on the result.
func Build(nodes []GraphNode, edges []Edge) (*Node, error) {
	var errs error

	byID := make(map[ID]*Node, len(nodes))
	order := make([]*Node, 0, len(nodes))
	for _, gn := range nodes {
		if err := errors.ValidateNodeID(string(gn.ID)); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := errors.ValidateWeight(string(gn.ID), gn.Weight); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := byID[gn.ID]; dup {
			errs = multierr.Append(errs, errors.Structural("duplicate node id %q", gn.ID))
			continue
		}
		n := &Node{ID: gn.ID, Label: gn.Label, WeightExcl: gn.Weight}
		if n.Label == "" {
			n.Label = string(gn.ID)
		}
		byID[gn.ID] = n
		order = append(order, n)
	}

	parent := make(map[ID]ID, len(edges))
	for i, e := range edges {
		if e.From == "" {
			errs = multierr.Append(errs, errors.Structural("edge %d: from is null", i))
			continue
		}
		if e.To == "" {
			errs = multierr.Append(errs, errors.Structural("edge %d: to is null", i))
			continue
		}
		from, ok := byID[e.From]
		if !ok {
			errs = multierr.Append(errs, errors.Structural("edge %d: unknown source node %q", i, e.From))
			continue
		}
		to, ok := byID[e.To]
		if !ok {
			errs = multierr.Append(errs, errors.Structural("edge %d: unknown target node %q", i, e.To))
			continue
		}
		if e.From == e.To {
			errs = multierr.Append(errs, errors.Structural("edge %d: self loop on %q", i, e.From))
			continue
		}
		if p, has := parent[e.To]; has {
			errs = multierr.Append(errs, errors.Structural("node %q has multiple parents (%q, %q)", e.To, p, e.From))
			continue
		}
		parent[e.To] = e.From
		from.Children = append(from.Children, to)
	}
	if errs != nil {
		return nil, errs
	}

	var roots []*Node
	for _, n := range order {
		if _, has := parent[n.ID]; !has {
			roots = append(roots, n)
		}
	}

	switch len(roots) {
	case 0:
		return nil, errors.Structural("no node without a parent found; this is a graph, not a tree")
	case 1:
	default:
		ids := make([]string, len(roots))
		for i, r := range roots {
			ids[i] = string(r.ID)
		}
		return nil, errors.Structural("multiple nodes without a parent found (%s); this is not a single tree",
			strings.Join(ids, ","))
	}

	root := roots[0]
	if reached := Count(root); reached != len(order) {
		return nil, errors.Structural("graph contains a cycle: %d nodes are unreachable from root %q",
			len(order)-reached, root.ID)
	}
	return root, nil
}

// Flatten is the inverse of [Build]: it lists the nodes of the subtree in
// pre-order and one edge per parent → child link.
func Flatten(root *Node) ([]GraphNode, []Edge) {
	var nodes []GraphNode
	var edges []Edge
	Walk(root, func(n *Node, _ int) bool {
		nodes = append(nodes, GraphNode{ID: n.ID, Label: n.Label, Weight: n.WeightExcl})
		for _, c := range n.Children {
			edges = append(edges, Edge{From: n.ID, To: c.ID})
		}
		return true
	})
	return nodes, edges
}
