package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/tree"
)

// convertCommand creates the convert command, which rewrites any supported
// input as graph JSON.
func (c *CLI) convertCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert folded stacks (or graph JSON) to graph JSON",
		Long: `Convert folded stacks (or graph JSON) to graph JSON.

The input is validated as a tree on the way through, so convert doubles as a
checker for hand-written graph files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), cmd.OutOrStdout(), args[0], fio.Format(format), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&format, "input-format", "", "input format: json, folded (default: by extension)")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, w io.Writer, input string, format fio.Format, output string) error {
	logger := loggerFromContext(ctx)

	var root *tree.Node
	var err error
	if format == "" {
		root, err = fio.ImportFile(input)
	} else {
		root, err = fio.ImportFileAs(input, format)
	}
	if err != nil {
		return err
	}
	tree.Propagate(root)
	logger.Debug("converted tree", "input", input, "nodes", tree.Count(root))

	if output == "" {
		return fio.WriteJSON(root, w)
	}
	if err := fio.ExportJSON(root, output); err != nil {
		return err
	}
	printSuccess(w, "Converted %s", input)
	printFile(w, output)
	return nil
}
