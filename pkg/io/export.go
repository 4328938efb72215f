package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flametower/pkg/tree"
)

type graph struct {
	Nodes []tree.GraphNode `json:"nodes"`
	Edges []tree.Edge      `json:"edges"`
}

// WriteJSON encodes the tree rooted at root as a JSON node/edge list and
// writes it to w. Nodes are listed in pre-order, so the root comes first.
// The output can be re-imported with [ReadJSON].
func WriteJSON(root *tree.Node, w io.Writer) error {
	nodes, edges := tree.Flatten(root)
	out := graph{Nodes: nodes, Edges: edges}
	if out.Edges == nil {
		out.Edges = []tree.Edge{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(root *tree.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(root, f)
}
