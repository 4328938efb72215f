package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flametower/pkg/pipeline"
)

// renderFlags holds the render command's flags that are not pipeline options.
type renderFlags struct {
	config  string
	output  string
	formats string
}

// renderCommand creates the render command for static outputs.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a call tree to SVG, PNG, JSON or DOT",
		Long: `Render a call tree to SVG, PNG, JSON or DOT.

The input is a graph JSON file ({"nodes": [...], "edges": [...]}) or folded
stacks ("main;parse;lex 12"). The flamechart is fitted to --width, or zoomed to
the frame named by --focus, and the chosen renderer is run until it settles
before the outputs are written.

With --type nodelink the tree is drawn as a Graphviz node-link diagram instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd.Flags(), flags.config, &opts); err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Input = args[0]
			}
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(flags.formats)
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, flags.output)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.config, "config", "", "options file (.toml, .yaml or .json); flags override it")
	fs.StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, json, dot (comma-separated)")
	fs.StringVarP(&opts.VizType, "type", "t", "", "visualization type: flame (default), nodelink")
	fs.Float64Var(&opts.Width, "width", 0, "viewport width in pixels (default 1200)")
	fs.Float64Var(&opts.Height, "height", 0, "viewport height in pixels (default: fit the tree)")
	fs.StringVar(&opts.Focus, "focus", "", "zoom to the frame with this id")
	fs.Float64Var(&opts.Scale, "scale", 0, "PNG resolution multiplier (default 2)")
	fs.StringVar(&opts.Background, "background", "", "background colour as #rrggbb")
	fs.BoolVar(&opts.NoLabels, "no-labels", false, "omit frame labels")
	fs.BoolVar(&opts.Detailed, "detailed", false, "show weights in nodelink labels")
	addLoadFlags(fs, &opts)
	addLayoutFlags(fs, &opts)
	addAnimFlags(fs, &opts)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, w, status io.Writer, opts pipeline.Options, output string) error {
	prog := newProgress(loggerFromContext(ctx))

	sp := newSpinner(ctx, status, "Rendering "+opts.Source())
	sp.Start()
	result, err := c.newRunner().Execute(ctx, opts)
	sp.Stop()
	if err != nil {
		return err
	}

	var written []string
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(output, opts.Input, format, len(opts.Formats))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess(w, "Rendered %s", opts.Source())
	for _, path := range written {
		printFile(w, path)
	}
	printStats(w, result.Stats.NodeCount, result.Stats.Depth, result.Stats.Frames)
	prog.done(fmt.Sprintf("Wrote %d files", len(written)))
	return nil
}
