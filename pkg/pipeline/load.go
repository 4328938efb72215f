package pipeline

import (
	"context"

	fio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/tree"
)

// Load imports or generates the call tree and propagates inclusive weights.
func Load(ctx context.Context, opts Options) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		root *tree.Node
		err  error
	)
	switch {
	case opts.Generate:
		root, err = tree.Generate(opts.GenerateOptions())
	case opts.Format != "":
		root, err = fio.ImportFileAs(opts.Input, fio.Format(opts.Format))
	default:
		root, err = fio.ImportFile(opts.Input)
	}
	if err != nil {
		return nil, err
	}

	tree.Propagate(root)
	return root, nil
}
