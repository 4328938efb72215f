package io

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/tree"
)

// RootID is the id of the synthetic node folded stacks are merged under.
const RootID tree.ID = "root"

const maxFoldedLine = 16 << 20

// ReadFolded parses folded stacks from r into a tree below a synthetic
// [RootID] node.
//
// Node ids are the frame path from the root joined with ";", so identical
// frame names under different callers stay distinct nodes. Children keep
// the order in which their paths first appear. Malformed lines produce an
// INVALID_FORMAT error naming the line number. ReadFolded does not close r.
func ReadFolded(r io.Reader) (*tree.Node, error) {
	root := &tree.Node{ID: RootID, Label: string(RootID)}
	children := map[*tree.Node]map[string]*tree.Node{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxFoldedLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sep := strings.LastIndexAny(line, " \t")
		if sep < 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: missing sample count", lineNo)
		}
		count, err := strconv.ParseFloat(line[sep+1:], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d: bad sample count", lineNo)
		}
		if err := errors.ValidateWeight(line[:sep], count); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", lineNo)
		}

		n := root
		for _, frame := range strings.Split(strings.TrimSpace(line[:sep]), ";") {
			if frame == "" {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: empty frame name", lineNo)
			}
			kids := children[n]
			if kids == nil {
				kids = map[string]*tree.Node{}
				children[n] = kids
			}
			child, ok := kids[frame]
			if !ok {
				child = &tree.Node{ID: n.ID + ";" + tree.ID(frame), Label: frame}
				kids[frame] = child
				n.Children = append(n.Children, child)
			}
			n = child
		}
		n.WeightExcl += count
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "scan")
	}
	return root, nil
}
