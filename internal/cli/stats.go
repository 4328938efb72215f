package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flametower/pkg/pipeline"
	"github.com/matzehuels/flametower/pkg/tree"
)

const defaultTop = 10

// treeStats summarises a call tree.
type treeStats struct {
	Nodes  int
	Leaves int
	Depth  int
	Total  float64
	Top    []frameStat
}

// frameStat is one row of the heaviest-frames table.
type frameStat struct {
	ID    tree.ID
	Label string
	Depth int
	Self  float64
	Total float64
}

// collectStats walks root once. Frames are ranked by exclusive weight,
// ties broken by inclusive weight and then pre-order position.
func collectStats(root *tree.Node, top int) treeStats {
	var s treeStats
	var frames []frameStat
	tree.Walk(root, func(n *tree.Node, depth int) bool {
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
		}
		frames = append(frames, frameStat{ID: n.ID, Label: n.DisplayLabel(), Depth: depth, Self: n.WeightExcl, Total: n.WeightIncl})
		return true
	})
	s.Depth = tree.Depth(root)
	if root != nil {
		s.Total = root.WeightIncl
	}

	slices.SortStableFunc(frames, func(a, b frameStat) int {
		if c := cmp.Compare(b.Self, a.Self); c != 0 {
			return c
		}
		return cmp.Compare(b.Total, a.Total)
	})
	if top >= 0 && len(frames) > top {
		frames = frames[:top]
	}
	s.Top = frames
	return s
}

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		config string
		top    int
		opts   pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarise a call tree",
		Long: `Summarise a call tree: node count, depth, total weight and the frames
with the highest self weight.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd.Flags(), config, &opts); err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Input = args[0]
			}
			return c.runStats(cmd.Context(), cmd.OutOrStdout(), opts, top)
		},
	}

	cmd.Flags().StringVar(&config, "config", "", "options file (.toml, .yaml or .json)")
	cmd.Flags().IntVarP(&top, "top", "n", defaultTop, "number of frames to list")
	addLoadFlags(cmd.Flags(), &opts)

	return cmd
}

func (c *CLI) runStats(ctx context.Context, w io.Writer, opts pipeline.Options, top int) error {
	root, err := c.newRunner().Load(ctx, opts)
	if err != nil {
		return err
	}
	s := collectStats(root, top)

	fmt.Fprintln(w, StyleTitle.Render(root.DisplayLabel()))
	printKeyValue(w, "Source", opts.Source())
	printKeyValue(w, "Nodes", strconv.Itoa(s.Nodes))
	printKeyValue(w, "Leaves", strconv.Itoa(s.Leaves))
	printKeyValue(w, "Depth", strconv.Itoa(s.Depth))
	printKeyValue(w, "Total weight", formatWeight(s.Total))
	if len(s.Top) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, renderTopTable(s))
	return nil
}

// renderTopTable formats the heaviest frames with their share of the total.
func renderTopTable(s treeStats) string {
	rows := make([][]string, 0, len(s.Top))
	for _, f := range s.Top {
		rows = append(rows, []string{
			f.Label,
			string(f.ID),
			strconv.Itoa(f.Depth),
			formatWeight(f.Self),
			formatWeight(f.Total),
			formatPercent(f.Self, s.Total),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Frame", "ID", "Depth", "Self", "Total", "Self %").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col >= 3:
				return StyleNumber
			case col == 1 || col == 2:
				return StyleDim
			}
			return StyleValue
		})
	return t.Render()
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func formatPercent(part, whole float64) string {
	if whole <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*part/whole)
}
