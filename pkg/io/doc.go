// Package io reads and writes weighted call trees.
//
// # Overview
//
// Two input formats are supported:
//
//   - JSON node/edge lists, the format the demo data and [WriteJSON] use
//   - Folded stacks, the one-line-per-sample-path format emitted by most
//     profilers' collapse scripts
//
// Both produce a validated [tree.Node] root; inclusive weights are not
// computed, call [tree.Propagate] before laying out.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": 0, "label": "root", "weight": 100},
//	    {"id": 1, "label": "A", "weight": 40}
//	  ],
//	  "edges": [[0, 1]]
//	}
//
// Ids may be strings or integers (integers are normalised to strings).
// Edges may be [from, to] pairs or {"from": .., "to": ..} objects. Labels
// default to the id. Structural problems (duplicate ids, dangling edges,
// several roots, cycles) are reported by [tree.Build] with code
// INVALID_GRAPH.
//
// # Folded Stacks
//
//	main;parse;lex 12
//	main;render 30
//
// Each line is a semicolon-separated frame path followed by a sample count.
// Paths are merged into a tree below a synthetic "root" node; the count is
// added to the exclusive weight of the last frame. Blank lines and lines
// starting with # are ignored.
//
// # Import
//
// [ImportFile] chooses the reader from the file extension:
//
//	root, err := io.ImportFile("cpu.folded")
//
// [ReadJSON] and [ReadFolded] read from any io.Reader and do not close it.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the JSON format, which [ReadJSON]
// reads back into an identical tree.
package io
