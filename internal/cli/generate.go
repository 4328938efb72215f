package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/pipeline"
	"github.com/matzehuels/flametower/pkg/tree"
)

// generateCommand creates the generate command for random demo trees.
func (c *CLI) generateCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{Generate: true}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random call tree as graph JSON",
		Long: `Write a random call tree as graph JSON.

Each node gets up to --fanout children down to --max-depth levels, with
self weights drawn uniformly from [0, 10). The same --seed always yields the
same tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "tree depth (default 16)")
	cmd.Flags().IntVar(&opts.Fanout, "fanout", 0, "maximum children per node (default 3)")
	cmd.Flags().IntVar(&opts.MaxNodes, "max-nodes", 0, "stop after this many nodes, 0 for none")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, w io.Writer, opts pipeline.Options, output string) error {
	root, err := c.newRunner().Load(ctx, opts)
	if err != nil {
		return err
	}
	if output == "" {
		return fio.WriteJSON(root, w)
	}
	if err := fio.ExportJSON(root, output); err != nil {
		return err
	}
	printSuccess(w, "Generated %d nodes", tree.Count(root))
	printFile(w, output)
	return nil
}
